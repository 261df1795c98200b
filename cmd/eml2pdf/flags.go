package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the eml2pdf command.
type cliFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
	help    bool
}

// parseFlags parses command-line flags and returns the remaining
// positional arguments: <input> [output].
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("eml2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&flags.config, "config", "c", "", "config file path")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&flags.version, "version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flags.help = true
			return flags, nil, nil
		}
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: eml2pdf <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert EML email files to PDF. Inline images are embedded and PDF")
	fmt.Fprintln(w, "attachments are appended as trailing pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    EML file, or directory to scan recursively for .eml files")
	fmt.Fprintln(w, "  output   Output .pdf path, or target directory (optional; default:")
	fmt.Fprintln(w, "           an \"output\" directory beside each input file)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>   Config file path")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show detailed timing")
	fmt.Fprintln(w, "      --version         Show version information")
	fmt.Fprintln(w, "  -h, --help            Show this message")
}
