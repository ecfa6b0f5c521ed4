package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// ScriptExtension is the conventional suffix of Crispy source files.
const ScriptExtension = ".crispy"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadScript reads a source file. A leading byte order mark is dropped.
func LoadScript(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("load script: empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("load script %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("load script %s: is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load script %s: %w", path, err)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// IsScript reports whether path carries the .crispy extension.
func IsScript(path string) bool {
	return filepath.Ext(path) == ScriptExtension
}
