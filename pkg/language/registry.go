// Package language maps user-supplied language tokens to the file extensions
// selected for a bundle.
package language

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// All is the canonical token that disables extension filtering.
const All = "all"

// ErrUnsupportedLanguage is matched by every error returned for an unknown token.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// UnsupportedLanguageError reports the token that could not be resolved.
type UnsupportedLanguageError struct {
	Token string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Token)
}

// Is makes errors.Is(err, ErrUnsupportedLanguage) hold.
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// Spec describes one selectable language.
type Spec struct {
	Name      string   // Canonical token, e.g. "python".
	Extension string   // File extension including the dot; empty for All.
	Aliases   []string // Alternate tokens accepted by Lookup.
}

// IsAll reports whether the spec selects every file.
func (s Spec) IsAll() bool {
	return s.Name == All
}

// Matches reports whether path carries the spec's extension.
func (s Spec) Matches(path string) bool {
	if s.IsAll() {
		return true
	}
	return filepath.Ext(path) == s.Extension
}

// registry is the read-only language table, in display order.
var registry = []Spec{
	{Name: "c#", Extension: ".cs", Aliases: []string{"cs", "csharp"}},
	{Name: "java", Extension: ".java"},
	{Name: "react", Extension: ".jsx", Aliases: []string{"jsx"}},
	{Name: "angular", Extension: ".ts", Aliases: []string{"ts", "typescript"}},
	{Name: "python", Extension: ".py", Aliases: []string{"py"}},
	{Name: "c++", Extension: ".cpp", Aliases: []string{"cpp", "cxx"}},
	{Name: "c", Extension: ".c"},
	{Name: "javascript", Extension: ".js", Aliases: []string{"js"}},
	{Name: "dotnet", Extension: ".sln", Aliases: []string{".net", "net"}},
	{Name: All, Aliases: []string{"*"}},
}

// Lookup resolves a token, case-insensitively, to its Spec.
func Lookup(token string) (Spec, error) {
	key := strings.ToLower(strings.TrimSpace(token))
	for _, spec := range registry {
		if spec.Name == key {
			return spec, nil
		}
		for _, alias := range spec.Aliases {
			if alias == key {
				return spec, nil
			}
		}
	}
	return Spec{}, &UnsupportedLanguageError{Token: token}
}

// Names returns the canonical tokens in display order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, spec := range registry {
		names = append(names, spec.Name)
	}
	return names
}
