// Package batch runs the background remover over every matching image in a
// directory, overwriting each file in place.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	whitebg "github.com/gcslaoli/whitebg-remover-go"
)

const (
	// DefaultDir is the directory processed when none is given.
	DefaultDir = "assets"
	// DefaultPattern keeps names ending in ".png", case-sensitive.
	DefaultPattern = "*.png"
)

// ErrDirNotFound is returned when the target directory is missing or is not a
// directory.
var ErrDirNotFound = errors.New("assets dir not found")

// Options controls a single run.
type Options struct {
	// Threshold is the per-channel brightness cutoff.
	Threshold uint8
	// Pattern selects file names inside the directory. Empty means DefaultPattern.
	Pattern string
	// DryRun counts background pixels without writing any file.
	DryRun bool
	// Logger receives one line per processed or failed file.
	Logger zerolog.Logger
}

// Summary describes the outcome of a run.
type Summary struct {
	Matched   int
	Processed int
	Failed    int
	Skipped   int
	Cleared   int
}

// Run processes every entry of dir whose name matches opts.Pattern. It only
// returns an error when the directory itself cannot be used; per-file
// failures are logged and counted in the summary.
func Run(dir string, opts Options) (Summary, error) {
	var sum Summary

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return sum, fmt.Errorf("invalid pattern %q", pattern)
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sum, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	case err != nil:
		return sum, fmt.Errorf("stat %s: %w", dir, err)
	case !info.IsDir():
		return sum, fmt.Errorf("%w: %s is not a directory", ErrDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return sum, fmt.Errorf("read dir %s: %w", dir, err)
	}

	eng := whitebg.NewEngine(opts.Threshold)
	log := opts.Logger.With().Uint8("threshold", eng.Threshold()).Logger()

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		ok, _ := doublestar.Match(pattern, name)
		if !ok {
			log.Debug().Str("path", path).Msg("Ignored")
			continue
		}
		if entry.IsDir() {
			sum.Skipped++
			log.Debug().Str("path", path).Msg("Skipped directory")
			continue
		}

		sum.Matched++

		if opts.DryRun {
			matched, total, err := countFile(eng, path)
			if err != nil {
				sum.Failed++
				log.Error().Err(err).Str("path", path).Msg("Failed " + path)
				continue
			}
			sum.Processed++
			sum.Cleared += matched
			log.Info().Str("path", path).Int("cleared", matched).Int("total", total).Msg("Would process " + path)
			continue
		}

		cleared, err := processFile(eng, path)
		if err != nil {
			sum.Failed++
			log.Error().Err(err).Str("path", path).Msg("Failed " + path)
			continue
		}
		sum.Processed++
		sum.Cleared += cleared
		log.Info().Str("path", path).Int("cleared", cleared).Msg("Processed " + path)
	}

	return sum, nil
}

// processFile rewrites path with its background cleared. The encoded PNG is
// built in memory first, so a decode or encode failure leaves the file as it
// was.
func processFile(eng *whitebg.Engine, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	out, cleared, err := eng.RemoveBackgroundBytes(data)
	if err != nil {
		return 0, err
	}

	if err := writeFile(path, out, info.Mode().Perm()); err != nil {
		return 0, err
	}
	return cleared, nil
}

func countFile(eng *whitebg.Engine, path string) (matched, total int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	img, _, err := whitebg.DecodeImageBytes(data)
	if err != nil {
		return 0, 0, err
	}
	return eng.CountBackground(img)
}

func writeFile(path string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, perm)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
