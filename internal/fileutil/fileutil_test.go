package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/roster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type record struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("file.txt", "x")
	env.MkdirAll("dir")

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing file",
			path:     env.Path("file.txt"),
			expected: true,
		},
		{
			name:     "non-existing file",
			path:     env.Path("missing.txt"),
			expected: false,
		},
		{
			name:     "directory",
			path:     env.Path("dir"),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FileExists(tc.path))
		})
	}
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)

	testCases := []struct {
		name           string
		file           string
		overwrite      bool
		existingData   string
		expectedResult bool
		expectedData   string
	}{
		{
			name:           "new file in new directory",
			file:           "nested/new.txt",
			expectedResult: true,
			expectedData:   "new content",
		},
		{
			name:           "existing file with overwrite",
			file:           "existing-overwrite.txt",
			overwrite:      true,
			existingData:   "old content",
			expectedResult: true,
			expectedData:   "new content",
		},
		{
			name:           "existing file without overwrite",
			file:           "existing-no-overwrite.txt",
			existingData:   "old content",
			expectedResult: false,
			expectedData:   "old content",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.existingData != "" {
				env.WriteFileString(tc.file, tc.existingData)
			}

			written, err := WriteFileWithOverwrite(env.Path(tc.file), []byte("new content"), 0o644, tc.overwrite)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, written)
			assert.Equal(t, tc.expectedData, env.ReadFileString(tc.file))
		})
	}
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("out", "people.json")
	data := []record{{ID: 1, Name: "Alice", Age: 30}, {ID: 2, Name: "Bob", Age: 25}}

	written, err := WriteJSONFile(data, path, false)
	require.NoError(t, err)
	assert.True(t, written)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []record
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, data, got)

	written, err = WriteJSONFile([]record{}, path, false)
	require.NoError(t, err)
	assert.False(t, written, "existing file must be kept without overwrite")
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")

	written, err := WriteJSONFile(map[string]any{"ch": make(chan int)}, path, true)
	require.Error(t, err)
	assert.False(t, written)
	assert.False(t, FileExists(path))
}

func TestWriteYAMLFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	data := []record{{ID: 7, Name: "Carol", Age: 41}}

	written, err := WriteYAMLFile(data, env.Path("people.yaml"), true)
	require.NoError(t, err)
	assert.True(t, written)

	content := env.ReadFileString("people.yaml")
	assert.Equal(t, "- id: 7\n  name: Carol\n  age: 41\n", content)

	var got []record
	require.NoError(t, yaml.Unmarshal([]byte(content), &got))
	assert.Equal(t, data, got)
}

func TestMarshalJSON_TrailingNewline(t *testing.T) {
	out, err := MarshalJSON([]record{})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}
