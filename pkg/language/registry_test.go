package language

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_CanonicalAndAliases(t *testing.T) {
	tests := []struct {
		token string
		name  string
		ext   string
	}{
		{"python", "python", ".py"},
		{"PYTHON", "python", ".py"},
		{"  Py ", "python", ".py"},
		{"C#", "c#", ".cs"},
		{"csharp", "c#", ".cs"},
		{"c++", "c++", ".cpp"},
		{"c", "c", ".c"},
		{"Java", "java", ".java"},
		{"react", "react", ".jsx"},
		{"angular", "angular", ".ts"},
		{"typescript", "angular", ".ts"},
		{"javascript", "javascript", ".js"},
		{"dotnet", "dotnet", ".sln"},
		{"ALL", "all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			spec, err := Lookup(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.name, spec.Name)
			assert.Equal(t, tt.ext, spec.Extension)
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	_, err := Lookup("cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
	assert.Contains(t, err.Error(), "cobol")

	var langErr *UnsupportedLanguageError
	require.True(t, errors.As(err, &langErr))
	assert.Equal(t, "cobol", langErr.Token)
}

func TestSpec_Matches(t *testing.T) {
	py, err := Lookup("python")
	require.NoError(t, err)
	assert.True(t, py.Matches("/src/a.py"))
	assert.False(t, py.Matches("/src/a.pyc"))
	assert.False(t, py.Matches("/src/a.PY"))
	assert.False(t, py.Matches("/src/py"))

	all, err := Lookup("all")
	require.NoError(t, err)
	assert.True(t, all.IsAll())
	assert.True(t, all.Matches("README"))
}

func TestNames_DisplayOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"c#", "java", "react", "angular", "python", "c++", "c", "javascript", "dotnet", "all"},
		Names())
}
