package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/afids/afids-go/pkg/fcsv"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	JSON    bool
	Verbose bool
	Files   []string
}

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	Valid   bool         `json:"valid"`
	Version string       `json:"version,omitempty"`
	Error   *IssueOutput `json:"error,omitempty"`
}

// IssueOutput describes why a file was rejected.
type IssueOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Label   string `json:"label,omitempty"`
	Field   string `json:"field,omitempty"`
}

func newValidateCommand(e *env) *cobra.Command {
	opts := ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [flags] <files...>",
		Short: "Validate fcsv files",
		Example: `  afids-check validate sub-01_afids.fcsv
  afids-check validate --json *.fcsv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			if code := RunValidate(e.parser(), opts, cmd.OutOrStdout(), e.logger); code != exitSuccess {
				return exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show details for valid files")
	return cmd
}

// RunValidate validates every file and reports the results. It returns
// exitValidation if any file is invalid.
func RunValidate(p *fcsv.Parser, opts ValidateOptions, stdout io.Writer, logger *zap.Logger) int {
	hasErrors := false
	results := make(map[string]*ValidationOutput)

	for _, file := range opts.Files {
		logger.Debug("validating file", zap.String("path", file))
		result := validateFile(p, file)
		results[file] = result

		if !result.Valid {
			hasErrors = true
		}

		if !opts.JSON {
			printValidationResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

func validateFile(p *fcsv.Parser, path string) *ValidationOutput {
	pf, err := p.ParseFile(path)
	if err != nil {
		return &ValidationOutput{Valid: false, Error: issueFromError(err)}
	}
	return &ValidationOutput{Valid: true, Version: pf.Version().String()}
}

func issueFromError(err error) *IssueOutput {
	var pe *fcsv.ParseError
	if errors.As(err, &pe) {
		return &IssueOutput{
			Code:    pe.Code(),
			Message: pe.Error(),
			Line:    pe.Line,
			Label:   pe.Label,
			Field:   pe.Field,
		}
	}
	return &IssueOutput{Code: "READ", Message: err.Error()}
}

func printValidationResult(w io.Writer, file string, result *ValidationOutput, verbose bool) {
	if result.Valid {
		if verbose {
			fmt.Fprintf(w, "%s: OK (version %s)\n", file, result.Version)
		} else {
			fmt.Fprintf(w, "%s: OK\n", file)
		}
		return
	}

	fmt.Fprintf(w, "%s: FAILED\n", file)
	fmt.Fprintf(w, "  ERROR %s: %s\n", result.Error.Code, result.Error.Message)
}
