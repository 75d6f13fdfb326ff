// Package rsp records bundle options into response files and expands response
// files back into command-line arguments.
package rsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codebundle/pkg/language"

	"go.uber.org/zap"
)

// ErrNoOutputName is returned when the response file name is left blank.
var ErrNoOutputName = errors.New("output file name is required")

// Answers are the bundle options collected by the generator.
type Answers struct {
	File             string // Response file to write.
	Output           string // Bundle output recorded as -o.
	Language         string
	IncludeNote      bool
	Sort             string
	RemoveEmptyLines bool
	Author           string
}

// CommandLine renders the answers as a single bundle invocation using the
// short flag spellings.
func (a Answers) CommandLine() string {
	return fmt.Sprintf("b -o %s -l %s -n=%t -s %s -r=%t -a %s",
		quoteIfNeeded(a.Output),
		quoteIfNeeded(a.Language),
		a.IncludeNote,
		quoteIfNeeded(a.Sort),
		a.RemoveEmptyLines,
		quote(a.Author))
}

// Generator asks for each bundle option in turn and writes the response file.
type Generator struct {
	In          io.Reader
	Out         io.Writer
	StrictBools bool // Re-prompt on an unparsable yes/no answer instead of taking false.
	Logger      *zap.Logger
}

// Run prompts for every answer, then writes the response file.
func (g *Generator) Run() (*Answers, error) {
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reader := bufio.NewReader(g.In)

	var a Answers
	var err error

	if a.File, err = g.ask(reader, "Enter output file name (with .rsp extension): "); err != nil {
		return nil, err
	}
	a.File = strings.TrimSpace(a.File)
	if a.File == "" {
		return nil, ErrNoOutputName
	}

	defaultOutput := DefaultOutput(a.File)
	fmt.Fprintf(g.Out, "Bundle output defaults to %s\n", defaultOutput)
	if a.Output, err = g.ask(reader, "Enter bundle output file name (empty or '-' keeps the default): "); err != nil {
		return nil, err
	}
	if a.Output = strings.TrimSpace(a.Output); a.Output == "" || a.Output == keepDefault {
		a.Output = defaultOutput
	}

	fmt.Fprintln(g.Out, strings.Join(language.Names(), " / "))
	if a.Language, err = g.ask(reader, "Enter language (or 'all'): "); err != nil {
		return nil, err
	}
	if a.IncludeNote, err = g.askBool(reader, "Include note? (true/false): "); err != nil {
		return nil, err
	}
	if a.Sort, err = g.ask(reader, "Sort by (name/type): "); err != nil {
		return nil, err
	}
	if a.RemoveEmptyLines, err = g.askBool(reader, "Remove empty lines? (true/false): "); err != nil {
		return nil, err
	}
	if a.Author, err = g.ask(reader, "Enter author's name: "); err != nil {
		return nil, err
	}

	line := a.CommandLine()
	logger.Debug("Writing response file", zap.String("file", a.File), zap.String("command", line))
	if err := os.WriteFile(a.File, []byte(line), 0o644); err != nil {
		logger.Error("Failed to write response file", zap.String("file", a.File), zap.Error(err))
		return nil, fmt.Errorf("failed to write response file: %w", err)
	}
	return &a, nil
}

// keepDefault answers the bundle output prompt with the derived default.
const keepDefault = "-"

// DefaultOutput derives a bundle name from the response file name so that
// replaying the response file never overwrites it.
func DefaultOutput(rspFile string) string {
	base := strings.TrimSuffix(rspFile, filepath.Ext(rspFile))
	if out := base + ".txt"; out != rspFile {
		return out
	}
	return base + ".bundle.txt"
}

// ask prints prompt and returns one input line without its terminator.
func (g *Generator) ask(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(g.Out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		// A last answer without a newline still counts.
		if line == "" {
			return "", fmt.Errorf("input ended before all answers were given: %w", io.ErrUnexpectedEOF)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// askBool reads a true/false answer. Unparsable input is false unless
// StrictBools is set, in which case the question is repeated.
func (g *Generator) askBool(reader *bufio.Reader, prompt string) (bool, error) {
	for {
		answer, err := g.ask(reader, prompt)
		if err != nil {
			return false, err
		}
		value, ok := parseBool(answer)
		if ok || !g.StrictBools {
			return value, nil
		}
		fmt.Fprintln(g.Out, "Please answer true or false.")
	}
}

// parseBool accepts "true" and "false" in any case, ignoring surrounding space.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"\\") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
