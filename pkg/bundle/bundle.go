package bundle

import (
	"codebundle/pkg/language"

	"go.uber.org/zap"
)

// Run resolves the language, selects and orders the candidates, and writes the
// bundle. An unsupported language is reported before the output is touched.
func Run(opts Options, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	spec, err := language.Lookup(opts.Language)
	if err != nil {
		logger.Debug("Language lookup failed", zap.String("language", opts.Language), zap.Error(err))
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	files, err := Select(dir, Criteria{
		Language: spec,
		Markers:  opts.Markers,
		Patterns: opts.Patterns,
		Skip:     []string{opts.Output, LockPath(opts.Output)},
	}, logger)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Info("No files matched", zap.String("dir", dir), zap.String("language", spec.Name))
	}

	return Write(opts, Order(files, opts.Sort), logger)
}
