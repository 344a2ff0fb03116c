package web

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrPathEscape = errors.New("path escapes base directory")

// SafePath resolves userPath under base. Absolute paths must already lie
// within base.
func SafePath(base, userPath string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	var resolved string
	if filepath.IsAbs(userPath) {
		resolved = filepath.Clean(userPath)
	} else {
		resolved = filepath.Clean(filepath.Join(absBase, userPath))
	}

	if !strings.HasPrefix(resolved, absBase+string(filepath.Separator)) && resolved != absBase {
		return "", fmt.Errorf("%q: %w", userPath, ErrPathEscape)
	}
	return resolved, nil
}
