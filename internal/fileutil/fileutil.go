package fileutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileExists checks if a regular file exists at the given path
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileWithOverwrite writes data to a file, respecting the overwrite flag
// Returns true if the file was written, false if it was skipped
func WriteFileWithOverwrite(filePath string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, perm); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}

	return true, nil
}

// MarshalJSON encodes data as indented JSON with a trailing newline
func MarshalJSON(data any) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// MarshalYAML encodes data as YAML with two-space indentation
func MarshalYAML(data any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSONFile writes data as JSON to a file, respecting the overwrite flag
// Returns true if the file was written, false if it was skipped
func WriteJSONFile(data any, filePath string, overwrite bool) (bool, error) {
	return writeEncoded(data, filePath, overwrite, "JSON", MarshalJSON)
}

// WriteYAMLFile writes data as YAML to a file, respecting the overwrite flag
// Returns true if the file was written, false if it was skipped
func WriteYAMLFile(data any, filePath string, overwrite bool) (bool, error) {
	return writeEncoded(data, filePath, overwrite, "YAML", MarshalYAML)
}

func writeEncoded(data any, filePath string, overwrite bool, kind string, marshal func(any) ([]byte, error)) (bool, error) {
	if FileExists(filePath) && !overwrite {
		slog.Info(kind+" file already exists, skipping", "filename", filePath, "overwrite", overwrite)
		return false, nil
	}

	encoded, err := marshal(data)
	if err != nil {
		return false, err
	}

	slog.Info("Writing "+kind+" file", "filename", filePath, "overwrite", overwrite)
	return WriteFileWithOverwrite(filePath, encoded, 0o644, true)
}
