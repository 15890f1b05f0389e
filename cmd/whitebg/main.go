package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	whitebg "github.com/gcslaoli/whitebg-remover-go"
	"github.com/gcslaoli/whitebg-remover-go/internal/batch"
)

// go run ./cmd/whitebg
// go run ./cmd/whitebg --dir sprites --threshold 230
// go run ./cmd/whitebg --dry-run --verbose
// go run ./cmd/whitebg --inbase64 "data:image/png;base64,..."

type options struct {
	dir         string
	pattern     string
	threshold   uint8
	dryRun      bool
	verbose     bool
	inputBase64 string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command and maps its error to a process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, batch.ErrDirNotFound) {
			fmt.Fprintln(stderr, "Assets dir not found")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "whitebg",
		Short:         "Make near-white PNG backgrounds transparent",
		Long:          "Overwrites every PNG in the target directory, turning pixels whose red, green and blue channels all exceed the threshold into transparent white.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(out, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.dir, "dir", batch.DefaultDir, "Directory containing the images")
	flags.StringVar(&opts.pattern, "pattern", batch.DefaultPattern, "File name pattern to process")
	flags.Uint8Var(&opts.threshold, "threshold", whitebg.DefaultThreshold, "Per-channel brightness cutoff (0-255)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Report background pixels without writing files")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log ignored entries")
	flags.StringVar(&opts.inputBase64, "inbase64", "", "Process a base64 image (optionally data URL) and print the result as base64")

	return cmd
}

func run(out io.Writer, opts options) error {
	level := zerolog.InfoLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).Level(level).With().Timestamp().Logger()

	if opts.inputBase64 != "" {
		return runBase64(out, opts)
	}

	sum, err := batch.Run(opts.dir, batch.Options{
		Threshold: opts.threshold,
		Pattern:   opts.pattern,
		DryRun:    opts.dryRun,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int("matched", sum.Matched).
		Int("processed", sum.Processed).
		Int("failed", sum.Failed).
		Int("cleared", sum.Cleared).
		Msg("Done")
	return nil
}

func runBase64(out io.Writer, opts options) error {
	encoded, _, err := whitebg.NewEngine(opts.threshold).RemoveBackgroundBase64(opts.inputBase64)
	if err != nil {
		return fmt.Errorf("remove background: %w", err)
	}

	fmt.Fprintln(out, encoded)
	return nil
}
