package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	eml2pdf "github.com/emlkit/eml2pdf"
	"github.com/emlkit/eml2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadMessage      = errors.New("failed to read message file")
	ErrWritePDF         = errors.New("failed to write PDF file")
	ErrInvalidExtension = errors.New("file must have .eml extension")
	ErrNoMessagesFound  = errors.New("no .eml files found")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultOutputDirName is the directory created beside an input file when
// no output destination is given.
const defaultOutputDirName = "output"

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input eml2pdf.Input) (*eml2pdf.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*eml2pdf.Service)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Skipped    []string // malformed PDF attachments that contributed no pages
	Err        error
	Duration   time.Duration
}

// runConvert orchestrates the conversion process: resolve input, discover
// files, convert sequentially, report results.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment) error {
	cfg := config.DefaultConfig()
	var err error
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	if len(args) == 0 {
		return ErrNoInput
	}
	inputPath := args[0]

	outputArg := cfg.Output.DefaultDir
	if len(args) > 1 {
		outputArg = args[1]
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMessage, err)
	}

	files, err := discoverFiles(inputPath, info)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMessagesFound, inputPath)
	}

	svc := eml2pdf.New(
		eml2pdf.WithTimeout(cfg.Timeout()),
		eml2pdf.WithRecycleEvery(cfg.Render.RecycleEvery),
	)
	defer svc.Close()

	loc := eml2pdf.NamingLocation(cfg.Naming.Timezone)

	// Single-file mode: failures are fatal to the process.
	if !info.IsDir() {
		result := convertFile(ctx, svc, files[0], outputArg, env, loc)
		printResult(result, flags.quiet, flags.verbose, env)
		return result.Err
	}

	return runBatch(ctx, svc, files, outputArg, flags, env, loc)
}

// runBatch converts files sequentially, reusing one service. Per-file
// failures are reported and skipped; the batch never aborts because of
// one bad input.
func runBatch(ctx context.Context, svc Converter, files []string, outputArg string, flags *cliFlags, env *Environment, loc *time.Location) error {
	var succeeded, failed int
	for _, path := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result := convertFile(ctx, svc, path, outputArg, env, loc)
		printResult(result, flags.quiet, flags.verbose, env)
		if result.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	if !flags.quiet && len(files) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return nil
}

// discoverFiles finds all message files to convert.
func discoverFiles(inputPath string, info os.FileInfo) ([]string, error) {
	if !info.IsDir() {
		if err := validateMessageExtension(inputPath); err != nil {
			return nil, err
		}
		return []string{inputPath}, nil
	}

	var files []string
	err := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".eml") {
			return nil
		}
		files = append(files, path)
		return nil
	})

	return files, err
}

// validateMessageExtension checks that the file has a .eml extension.
func validateMessageExtension(path string) error {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".eml") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, service Converter, inputPath, outputArg string, env *Environment, loc *time.Location) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: inputPath}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMessage, err)
		result.Duration = time.Since(start)
		return result
	}

	converted, err := service.Convert(ctx, eml2pdf.Input{EML: content})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Skipped = converted.SkippedAttachments

	result.OutputPath = resolveOutputPath(inputPath, outputArg, converted.Message, env.Now, loc)

	if err := os.MkdirAll(filepath.Dir(result.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(result.OutputPath, converted.PDF, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePDF, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// resolveOutputPath determines the PDF output path for a message file.
//
//   - explicit path ending in .pdf: used verbatim
//   - explicit path that is an existing directory or has no extension:
//     treated as a target directory, filename derived from the message
//   - no argument: "output" directory beside the input file
func resolveOutputPath(inputPath, outputArg string, msg *eml2pdf.Message, now func() time.Time, loc *time.Location) string {
	name := eml2pdf.OutputFileName(msg, now, loc)

	if outputArg == "" {
		return filepath.Join(filepath.Dir(inputPath), defaultOutputDirName, name)
	}

	if strings.EqualFold(filepath.Ext(outputArg), ".pdf") {
		return outputArg
	}

	if isDir(outputArg) || filepath.Ext(outputArg) == "" {
		return filepath.Join(outputArg, name)
	}

	// A path with some other extension is taken at face value.
	return outputArg
}

// isDir reports whether the path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// printResult outputs one conversion outcome using the environment writers.
func printResult(r ConversionResult, quiet, verbose bool, env *Environment) {
	for _, name := range r.Skipped {
		fmt.Fprintf(env.Stderr, "WARN %s: skipping malformed PDF attachment %q\n", r.InputPath, name)
	}

	if r.Err != nil {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
		return
	}

	if quiet {
		return
	}

	if verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
	}
}
