package ignore

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
	singleStar         = regexp.MustCompile(`\*`)
)

// escapeSpecialChars escapes regex metacharacters except '*', '?' and '/'.
func escapeSpecialChars(pattern string) string {
	for _, char := range `\.+()|^$[]{}` {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// Placeholders emitted for '**' so wildcardToRegex leaves them alone.
const (
	anyOneOrMore  = "\x00" // .+
	anyZeroOrMore = "\x01" // .*
	optionalGroup = "\x02" // ? quantifier
)

// handleDoubleStarPatterns rewrites '**' segments into placeholder groups.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllString(pattern, "(/|/"+anyOneOrMore+"/)")
	pattern = doubleStarTrailing.ReplaceAllString(pattern, "(/"+anyZeroOrMore+")"+optionalGroup)
	pattern = doubleStarLeading.ReplaceAllString(pattern, "("+anyZeroOrMore+"/)"+optionalGroup)
	return pattern
}

// wildcardToRegex converts '*' and '?' and resolves the '**' placeholders.
func wildcardToRegex(pattern string) string {
	pattern = singleStar.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", "[^/]")
	pattern = strings.ReplaceAll(pattern, anyOneOrMore, ".+")
	pattern = strings.ReplaceAll(pattern, anyZeroOrMore, ".*")
	pattern = strings.ReplaceAll(pattern, optionalGroup, "?")
	return pattern
}

// anchorPattern anchors the expression to the full path. A leading '/' in the
// original pattern pins it to the bundle root; otherwise it may match at any depth.
func anchorPattern(pattern, original string) string {
	if strings.HasSuffix(original, "/") {
		// Directory patterns only match what lives below the directory.
		pattern += ".+$"
	} else {
		pattern += "(/.*)?$"
	}
	if strings.HasPrefix(original, "/") {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	return "^(|.*/)" + pattern
}

// normalizePath uses forward slashes and drops a leading "./".
func normalizePath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
