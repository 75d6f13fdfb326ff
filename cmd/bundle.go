package cmd

import (
	"errors"
	"path/filepath"

	"codebundle/pkg/bundle"
	"codebundle/pkg/ignore"
	"codebundle/pkg/language"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type bundleFlags struct {
	output           string
	language         string
	note             bool
	sort             string
	removeEmptyLines bool
	author           string
	dir              string
	strict           bool
	matchSegments    bool
}

func newBundleCommand(a *app) *cobra.Command {
	var f bundleFlags

	cmd := &cobra.Command{
		Use:     "bundle",
		Aliases: []string{"b"},
		Short:   "bundle code files to a single file",
		Example: `  codebundle bundle -o bundle.txt -l python -n -r -a "Jane"
  codebundle b -o all.txt -l all -s type`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags are valid from here on; failures are reported by runBundle.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return runBundle(cmd, a, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "file path and name")
	flags.StringVarP(&f.language, "language", "l", "", "Specify programming languages or 'all' for all files")
	flags.BoolVarP(&f.note, "note", "n", false, "Include source code as a comment in the bundle")
	flags.StringVarP(&f.sort, "sort", "s", string(bundle.SortByName), "Sort files by 'name' (default) or 'type'")
	flags.BoolVarP(&f.removeEmptyLines, "remove-empty-lines", "r", false, "Remove empty lines from code")
	flags.StringVarP(&f.author, "author", "a", "", "Name of the author")
	flags.StringVar(&f.dir, "dir", ".", "directory whose files are bundled")
	flags.BoolVar(&f.strict, "strict", false, "exit non-zero when bundling fails (overrides exit_mode)")
	flags.BoolVar(&f.matchSegments, "match-segments", false, "exclude bin/debug only as whole path elements (overrides marker_match)")

	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func runBundle(cmd *cobra.Command, a *app, f bundleFlags) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	strict := f.strict || a.cfg.Strict()

	cfg := *a.cfg
	if f.matchSegments {
		cfg.MarkerMatch = ignore.ModeSegment
	}
	markers, patterns := cfg.Exclusions()

	dir, err := filepath.Abs(f.dir)
	if err != nil {
		printError(errOut, "Error: %v", err)
		return a.fail(strict)
	}

	opts := bundle.Options{
		Dir:              dir,
		Output:           f.output,
		Language:         f.language,
		IncludeNote:      f.note,
		Sort:             bundle.ParseSortMode(f.sort),
		RemoveEmptyLines: f.removeEmptyLines,
		Author:           f.author,
		Markers:          markers,
		Patterns:         patterns,
	}
	a.logger.Debug("Bundling",
		zap.String("dir", opts.Dir),
		zap.String("output", opts.Output),
		zap.String("language", opts.Language),
		zap.String("sort", string(opts.Sort)))

	if spec, err := language.Lookup(opts.Language); err == nil && spec.IsAll() {
		printInfo(out, "Including all code files in the directory.")
	}

	report, err := bundle.Run(opts, a.logger)
	if err != nil {
		var langErr *language.UnsupportedLanguageError
		if errors.As(err, &langErr) {
			printError(errOut, "Unsupported language: %s", langErr.Token)
		} else {
			printError(errOut, "Error: %v", err)
		}
		return a.fail(strict)
	}

	if report.Files == 0 && report.FileErrors == nil {
		printInfo(out, "No files matched language %s in %s.", opts.Language, opts.Dir)
	}
	for _, fileErr := range multierr.Errors(report.FileErrors) {
		printError(errOut, "Error: %v", fileErr)
	}
	printSuccess(out, "Bundling completed. Output file: %s", report.Output)

	if report.FileErrors != nil {
		return a.fail(strict)
	}
	return nil
}
