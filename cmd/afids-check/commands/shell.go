package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newShellCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Validate files interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "afids> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				AutoComplete: readline.NewPrefixCompleter(
					readline.PcItem("validate"),
					readline.PcItem("show"),
					readline.PcItem("labels"),
					readline.PcItem("help"),
					readline.PcItem("exit"),
				),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			sh := &shell{env: e, out: rl.Stdout()}
			sh.printHelp()
			for {
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) {
						continue
					}
					return nil
				}
				if sh.handle(line) {
					return nil
				}
			}
		},
	}
}

// shell dispatches interactive commands.
type shell struct {
	env *env
	out io.Writer
}

// handle runs one input line and reports whether the shell should exit.
func (s *shell) handle(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "validate", "v":
		if len(args) == 0 {
			fmt.Fprintln(s.out, "Usage: validate <files...>")
			return false
		}
		RunValidate(s.env.parser(), ValidateOptions{Files: args, Verbose: true}, s.out, s.env.logger)

	case "show", "s":
		if len(args) == 0 || len(args) > 2 {
			fmt.Fprintln(s.out, "Usage: show <file> [json|yaml]")
			return false
		}
		opts := ShowOptions{File: args[0], Format: "json"}
		if len(args) == 2 {
			opts.Format = args[1]
		}
		if opts.Format == "cbor" {
			fmt.Fprintln(s.out, "cbor output is binary; use 'afids-check show --format cbor -o <out>'")
			return false
		}
		if err := RunShow(s.env.parser(), opts, s.out, s.env.logger); err != nil {
			var ee exitError
			if !errors.As(err, &ee) {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
		}

	case "labels", "l":
		labels := newLabelsCommand()
		labels.SetOut(s.out)
		_ = labels.RunE(labels, nil)

	case "exit", "quit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  validate <files...>      Validate fcsv files
  show <file> [json|yaml]  Print the canonical form of a file
  labels                   List the 32 fiducials
  help                     Show this help
  exit                     Leave the shell`)
}
