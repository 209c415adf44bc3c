// Package filex writes client-side files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteInSubdir writes data to dirName/fileName under the current working
// directory, creating the directory when missing, and returns the file path.
// fileName must be a bare name.
func WriteInSubdir(dirName, fileName string, data []byte) (string, error) {
	if fileName == "" || filepath.Base(fileName) != fileName {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
