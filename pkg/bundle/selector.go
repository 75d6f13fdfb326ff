package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codebundle/pkg/ignore"
	"codebundle/pkg/language"

	"go.uber.org/zap"
)

// ErrInvalidDirectory is returned when the bundle directory cannot be listed.
var ErrInvalidDirectory = errors.New("invalid directory")

// Criteria narrows the entries of a directory down to bundle candidates.
type Criteria struct {
	Language language.Spec
	Markers  ignore.Matcher // Sees the joined candidate path.
	Patterns ignore.Matcher // Sees the entry name relative to the directory.
	Skip     []string       // Paths never selected, e.g. the bundle itself.
}

// Select lists the regular files directly inside dir that satisfy criteria.
// Subdirectories are not descended into. No match yields an empty slice.
func Select(dir string, criteria Criteria, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Selecting files",
		zap.String("dir", dir),
		zap.String("language", criteria.Language.Name))

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("Failed to read directory", zap.String("dir", dir), zap.Error(err))
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidDirectory, dir, err)
	}

	skip := make(map[string]bool, len(criteria.Skip))
	for _, path := range criteria.Skip {
		if abs, err := filepath.Abs(path); err == nil {
			skip[abs] = true
		}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !entry.Type().IsRegular() && !(entry.Type()&os.ModeSymlink != 0 && isRegularTarget(path)) {
			continue
		}

		if !criteria.Language.Matches(path) {
			continue
		}
		if criteria.Markers != nil && criteria.Markers.MatchesPath(path) {
			logger.Debug("Skipping build artifact", zap.String("file", path))
			continue
		}
		if criteria.Patterns != nil && criteria.Patterns.MatchesPath(entry.Name()) {
			logger.Debug("Skipping excluded file", zap.String("file", path))
			continue
		}
		if abs, err := filepath.Abs(path); err == nil && skip[abs] {
			logger.Debug("Skipping bundle output", zap.String("file", path))
			continue
		}

		if criteria.Language.IsAll() {
			if binary, err := looksBinary(path); err == nil && binary {
				logger.Info("Selected file looks binary; it is bundled as is", zap.String("file", path))
			}
		}

		files = append(files, path)
	}

	logger.Debug("Selected files", zap.Int("count", len(files)))
	return files, nil
}

// isRegularTarget reports whether a symlink resolves to a regular file.
func isRegularTarget(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
