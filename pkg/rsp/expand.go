package rsp

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// Expand replaces every "@path" argument with the tokens stored in that file.
// "@@x" stands for a literal "@x". Response files are not expanded recursively.
func Expand(args []string) ([]string, error) {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "@@"):
			expanded = append(expanded, arg[1:])
		case strings.HasPrefix(arg, "@") && len(arg) > 1:
			data, err := os.ReadFile(arg[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to read response file: %w", err)
			}
			tokens, err := Tokenize(string(data))
			if err != nil {
				return nil, fmt.Errorf("response file %s: %w", arg[1:], err)
			}
			expanded = append(expanded, tokens...)
		default:
			expanded = append(expanded, arg)
		}
	}
	return expanded, nil
}

// Tokenize splits a response file into arguments. Tokens are separated by
// whitespace; double quotes group text, and inside them a backslash escapes
// '"' or '\'.
func Tokenize(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken, inQuotes := false, false

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
			i++
			current.WriteRune(runes[i])
		case r == '"':
			inQuotes = !inQuotes
			inToken = true
		case !inQuotes && unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if inQuotes {
		return nil, errUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
