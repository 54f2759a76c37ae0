package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/afids/afids-go/pkg/fcsv"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format string
	Output string
	File   string
}

func newShowCommand(e *env) *cobra.Command {
	opts := ShowOptions{}
	cmd := &cobra.Command{
		Use:   "show [flags] <file>",
		Short: "Print the canonical form of a valid fcsv file",
		Example: `  afids-check show sub-01_afids.fcsv
  afids-check show --format yaml sub-01_afids.fcsv
  afids-check show --format cbor -o sub-01.cbor sub-01_afids.fcsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.File = args[0]
			return RunShow(e.parser(), opts, cmd.OutOrStdout(), e.logger)
		},
	}
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "json", "Output format: json, yaml, cbor")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// RunShow parses a file and writes it in the requested format. An invalid
// file yields an exitValidation error after printing the diagnostic.
func RunShow(p *fcsv.Parser, opts ShowOptions, stdout io.Writer, logger *zap.Logger) error {
	pf, err := p.ParseFile(opts.File)
	if err != nil {
		logger.Debug("parse failed", zap.String("path", opts.File), zap.Error(err))
		fmt.Fprintf(stdout, "%s: FAILED\n  ERROR %s\n", opts.File, err)
		return exitError{code: exitValidation}
	}

	data, err := encode(pf, opts.Format)
	if err != nil {
		return err
	}

	var w io.Writer = stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	_, err = w.Write(data)
	return err
}

func encode(pf *fcsv.ParsedFile, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := pf.Canonical()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(pf)
	case "cbor":
		return pf.EncodeCBOR()
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: json, yaml, cbor)", format)
	}
}
