package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/afids/afids-go/internal/store"
	"github.com/afids/afids-go/pkg/fcsv"
)

// timestampLayout matches "2024-03-01 14:05:09 UTC".
const timestampLayout = "2006-01-02 15:04:05 MST"

// defaultListLimit caps GET /api/v1/sets when no limit is given.
const defaultListLimit = 100

// allowedExtensions are matched case-sensitively against the text after the
// last dot of the uploaded file name.
var allowedExtensions = map[string]bool{
	"fcsv": true,
	"csv":  true,
}

// SetStore is the persistence used by the API.
type SetStore interface {
	Save(source string, content []byte, pf *fcsv.ParsedFile) (*store.Set, bool, error)
	Get(id string) (*store.Set, error)
	List(limit, offset int) ([]store.Set, error)
	Delete(id string) (bool, error)
}

// SetsAPI handles file validation and stored set endpoints.
type SetsAPI struct {
	store          SetStore
	parser         *fcsv.Parser
	maxUploadBytes int64
	logger         *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewSetsAPI creates a new sets API handler.
func NewSetsAPI(s SetStore, parser *fcsv.Parser, maxUploadBytes int64, logger *zap.Logger) *SetsAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetsAPI{
		store:          s,
		parser:         parser,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
		now:            time.Now,
	}
}

// allowedFile reports whether name has an accepted extension.
func allowedFile(name string) bool {
	i := strings.LastIndex(name, ".")
	return i >= 0 && allowedExtensions[name[i+1:]]
}

// HandleValidate handles POST /api/v1/validate.
//
// The file is read from the multipart field "filename". A form value "save"
// of on, true or 1 persists a valid set.
func (a *SetsAPI) HandleValidate(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	timestamp := a.now().UTC().Format(timestampLayout)

	req.Body = http.MaxBytesReader(w, req.Body, a.maxUploadBytes)
	if err := req.ParseMultipartForm(a.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "Upload too large", err.Error())
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}

	file, header, err := req.FormFile("filename")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file uploaded", err.Error())
		return
	}
	defer file.Close()

	if !allowedFile(header.Filename) {
		writeJSONResponse(w, http.StatusBadRequest, ValidateResponse{
			Valid:     false,
			Message:   "Invalid file: extension not allowed (" + timestamp + ")",
			Timestamp: timestamp,
		})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to read upload", err.Error())
		return
	}

	pf, err := a.parser.ParseBytes(content)
	if err != nil {
		resp := ValidateResponse{
			Valid:     false,
			Message:   "Invalid file: " + err.Error() + " (" + timestamp + ")",
			Timestamp: timestamp,
		}
		var pe *fcsv.ParseError
		if errors.As(err, &pe) {
			resp.Code = pe.Code()
			resp.Line = pe.Line
		}
		a.logger.Info("rejected upload",
			zap.String("file", header.Filename),
			zap.String("code", resp.Code),
			zap.Error(err))
		writeJSONResponse(w, http.StatusUnprocessableEntity, resp)
		return
	}

	resp := ValidateResponse{
		Valid:     true,
		Message:   "Valid file (" + timestamp + ")",
		Timestamp: timestamp,
		Version:   pf.Version().String(),
		Fiducials: pf,
	}

	if wantSave(req.FormValue("save")) {
		set, created, err := a.store.Save(header.Filename, content, pf)
		if err != nil {
			a.logger.Error("failed to save set", zap.String("file", header.Filename), zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Failed to save set", err.Error())
			return
		}
		resp.SetID = set.ID
		resp.Duplicate = !created
		a.logger.Info("saved set",
			zap.String("id", set.ID),
			zap.String("file", header.Filename),
			zap.Bool("created", created))
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func wantSave(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1":
		return true
	}
	return false
}

// HandleSets handles GET /api/v1/sets.
func (a *SetsAPI) HandleSets(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, err := queryInt(req, "limit", defaultListLimit)
	if err != nil || limit <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid limit", req.URL.Query().Get("limit"))
		return
	}
	offset, err := queryInt(req, "offset", 0)
	if err != nil || offset < 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid offset", req.URL.Query().Get("offset"))
		return
	}

	sets, err := a.store.List(limit, offset)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list sets", err.Error())
		return
	}

	resp := SetListResponse{Sets: make([]SetSummary, 0, len(sets))}
	for i := range sets {
		resp.Sets = append(resp.Sets, summarize(&sets[i]))
	}
	resp.Total = len(resp.Sets)

	writeJSONResponse(w, http.StatusOK, resp)
}

// HandleSetByID handles GET and DELETE /api/v1/sets/:id.
func (a *SetsAPI) HandleSetByID(w http.ResponseWriter, req *http.Request) {
	id := strings.TrimPrefix(req.URL.Path, "/api/v1/sets/")
	if id == "" || strings.Contains(id, "/") {
		writeJSONError(w, http.StatusNotFound, "Set not found", id)
		return
	}

	switch req.Method {
	case http.MethodGet:
		set, err := a.store.Get(id)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "Failed to get set", err.Error())
			return
		}
		if set == nil {
			writeJSONError(w, http.StatusNotFound, "Set not found", id)
			return
		}
		writeJSONResponse(w, http.StatusOK, SetDetailResponse{
			SetSummary: summarize(set),
			Fiducials:  set.Fiducials,
		})

	case http.MethodDelete:
		deleted, err := a.store.Delete(id)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "Failed to delete set", err.Error())
			return
		}
		if !deleted {
			writeJSONError(w, http.StatusNotFound, "Set not found", id)
			return
		}
		a.logger.Info("deleted set", zap.String("id", id))
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func queryInt(req *http.Request, key string, def int) (int, error) {
	v := req.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// writeJSONResponse writes a JSON response.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	writeJSONResponse(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
