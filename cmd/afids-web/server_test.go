package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{
		Port:           0,
		DBPath:         ":memory:",
		Version:        "1.0.0-test",
		MaxUploadBytes: 1 << 20,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(w, req)
	return w
}

func upload(t *testing.T, path string, save bool) *http.Request {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("filename", "sub-01_afids.fcsv")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	if save {
		require.NoError(t, mw.WriteField("save", "on"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.0.0-test", resp["version"])

	w = serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestInfoEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"set_count":0}`, w.Body.String())
}

func TestUploadSaveAndFetch(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, upload(t, "../../testdata/fcsv/sub-01_afids.fcsv", true))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var validated struct {
		Valid bool   `json:"valid"`
		SetID string `json:"set_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validated))
	require.True(t, validated.Valid)
	require.NotEmpty(t, validated.SetID)

	// Same content again resolves to the stored set.
	w = serve(srv, upload(t, "../../testdata/fcsv/sub-01_afids.fcsv", true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duplicate":true`)

	// A sign-flipped file with the same landmarks has different bytes.
	w = serve(srv, upload(t, "../../testdata/fcsv/sub-01_afids_lps.fcsv", true))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))
	assert.JSONEq(t, `{"set_count":2}`, w.Body.String())

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sets/"+validated.SetID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		ID      string             `json:"id"`
		Version string             `json:"version"`
		Columns map[string]float64 `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, validated.SetID, detail.ID)
	assert.Equal(t, "4.10", detail.Version)
	assert.Equal(t, -14.093, detail.Columns["AC_x"])

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sets", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)

	w = serve(srv, httptest.NewRequest(http.MethodDelete, "/api/v1/sets/"+validated.SetID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sets/"+validated.SetID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadInvalidFile(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, upload(t, "../../testdata/fcsv/too_few_rows.fcsv", true))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"TOO_FEW_ROWS"`)

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))
	assert.JSONEq(t, `{"set_count":0}`, w.Body.String())
}

func TestLogRequestsRecordsStatus(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
