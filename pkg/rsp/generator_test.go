package rsp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answers(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestGenerator_WritesCommandLine(t *testing.T) {
	file := filepath.Join(t.TempDir(), "py.rsp")
	var out bytes.Buffer
	g := &Generator{In: answers(file, "out.txt", "python", "True", "name", "false", "Jane"), Out: &out}

	a, err := g.Run()
	require.NoError(t, err)

	assert.True(t, a.IncludeNote)
	assert.False(t, a.RemoveEmptyLines)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `b -o out.txt -l python -n=true -s name -r=false -a "Jane"`, string(data))

	prompts := out.String()
	assert.Contains(t, prompts, "Enter output file name (with .rsp extension): ")
	assert.Contains(t, prompts, "c# / java / react / angular / python / c++ / c / javascript / dotnet / all\n")
	assert.Contains(t, prompts, "Enter author's name: ")
}

func TestGenerator_BundleOutputDefault(t *testing.T) {
	for _, answer := range []string{"", "-", "  -  "} {
		t.Run(fmt.Sprintf("%q", answer), func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "py.rsp")
			var out bytes.Buffer
			g := &Generator{In: answers(file, answer, "python", "false", "name", "false", "Jane"), Out: &out}

			a, err := g.Run()
			require.NoError(t, err)

			want := strings.TrimSuffix(file, ".rsp") + ".txt"
			assert.Equal(t, want, a.Output)
			assert.Equal(t, "python", a.Language)
			assert.Equal(t, "Jane", a.Author)
			assert.Contains(t, out.String(), "Bundle output defaults to "+want+"\n")
		})
	}
}

func TestGenerator_LenientBoolsDefaultToFalse(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.rsp")
	g := &Generator{In: answers(file, "", "all", "yes", "type", "1", ""), Out: io.Discard}

	a, err := g.Run()
	require.NoError(t, err)
	assert.False(t, a.IncludeNote)
	assert.False(t, a.RemoveEmptyLines)
	assert.Equal(t, "", a.Author)
	assert.Equal(t, filepath.Join(filepath.Dir(file), "a.txt"), a.Output)
}

func TestGenerator_StrictBoolsReprompt(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.rsp")
	var out bytes.Buffer
	g := &Generator{
		In:          answers(file, "", "c#", "yes", "TRUE", "name", "nope", "false", "Jane"),
		Out:         &out,
		StrictBools: true,
	}

	a, err := g.Run()
	require.NoError(t, err)
	assert.True(t, a.IncludeNote)
	assert.False(t, a.RemoveEmptyLines)
	assert.Equal(t, 2, strings.Count(out.String(), "Please answer true or false."))
}

func TestGenerator_StrictBoolsAbortOnEOF(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.rsp")
	g := &Generator{In: answers(file, "", "c#", "maybe"), Out: io.Discard, StrictBools: true}

	_, err := g.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	_, statErr := os.Stat(file)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_RequiresFileName(t *testing.T) {
	g := &Generator{In: answers("  "), Out: io.Discard}
	_, err := g.Run()
	assert.ErrorIs(t, err, ErrNoOutputName)
}

func TestGenerator_OverwritesExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.rsp")
	require.NoError(t, os.WriteFile(file, []byte("an older, much longer response file line"), 0o644))

	g := &Generator{In: answers(file, "", "java", "false", "name", "false", "A"), Out: io.Discard}
	_, err := g.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "older")
	assert.NotContains(t, string(data), "\n")
}

func TestAnswers_CommandLineQuotes(t *testing.T) {
	a := Answers{File: "my bundle.rsp", Output: "my bundle.txt", Language: "c++", Sort: "", Author: `Jane "JD" Doe`}
	assert.Equal(t,
		`b -o "my bundle.txt" -l c++ -n=false -s "" -r=false -a "Jane \"JD\" Doe"`,
		a.CommandLine())
}

func TestCommandLine_TokenizesBack(t *testing.T) {
	a := Answers{File: "out dir/x.rsp", Output: "out dir/x.txt", Language: "python", IncludeNote: true, Sort: "type", Author: `A "B" C`}

	tokens, err := Tokenize(a.CommandLine())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "-o", "out dir/x.txt", "-l", "python", "-n=true", "-s", "type", "-r=false", "-a", `A "B" C`}, tokens)
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "py.txt", DefaultOutput("py.rsp"))
	assert.Equal(t, "dir/py.txt", DefaultOutput("dir/py.rsp"))
	assert.Equal(t, "bundle.txt", DefaultOutput("bundle"))
	assert.Equal(t, "notes.bundle.txt", DefaultOutput("notes.txt"))
}
