// Package ignore decides which directory entries are kept out of a bundle.
package ignore

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Matcher reports whether a path should be excluded.
type Matcher interface {
	MatchesPath(path string) bool
}

// Pattern is one compiled exclusion line.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled form of Line.
	Negate bool           // Line started with '!'.
	Line   string         // Original pattern text.
	LineNo int            // Position in the source list (1-based).
}

// Patterns is an ordered list of gitignore-style wildcard patterns.
// Later patterns win, so a negated line can re-include an earlier match.
type Patterns struct {
	patterns []*Pattern
	lines    int
	logger   *zap.Logger
}

// NewPatterns compiles the given lines. Blank lines and '#' comments are skipped.
func NewPatterns(logger *zap.Logger, lines ...string) *Patterns {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Patterns{logger: logger}
	p.Add(lines...)
	return p
}

// Add compiles and appends more pattern lines.
func (p *Patterns) Add(lines ...string) {
	for _, line := range lines {
		p.lines++
		re, negate := parsePatternLine(line)
		if re == nil {
			continue
		}
		pattern := &Pattern{
			Regexp: re,
			Negate: negate,
			Line:   line,
			LineNo: p.lines,
		}
		p.patterns = append(p.patterns, pattern)
		p.logger.Debug("Compiled exclude pattern",
			zap.Int("lineNo", pattern.LineNo),
			zap.String("pattern", pattern.Line),
			zap.Bool("negate", pattern.Negate))
	}
}

// Len returns the number of compiled patterns.
func (p *Patterns) Len() int {
	if p == nil {
		return 0
	}
	return len(p.patterns)
}

// MatchesPath checks a slash- or OS-separated relative path against the patterns.
func (p *Patterns) MatchesPath(path string) bool {
	matched, _ := p.MatchesPathWithPattern(path)
	return matched
}

// MatchesPathWithPattern also returns the last pattern that decided the result.
func (p *Patterns) MatchesPathWithPattern(path string) (bool, *Pattern) {
	if p == nil {
		return false, nil
	}
	normalized := normalizePath(path)

	matched := false
	var decided *Pattern
	for _, pattern := range p.patterns {
		if !pattern.Regexp.MatchString(normalized) {
			continue
		}
		matched = !pattern.Negate
		decided = pattern
	}

	if decided != nil {
		p.logger.Debug("Path matched exclude pattern",
			zap.String("path", normalized),
			zap.String("pattern", decided.Line),
			zap.Bool("excluded", matched))
	}
	return matched, decided
}

// parsePatternLine turns one line into a regular expression and a negation flag.
// Returns nil for blank lines, comments and lines that do not compile.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// "\#" and "\!" start a literal pattern.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return nil, false
	}

	expr := escapeSpecialChars(trimmed)
	expr = handleDoubleStarPatterns(expr)
	expr = wildcardToRegex(expr)
	expr = anchorPattern(expr, trimmed)

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false
	}
	return re, negate
}
