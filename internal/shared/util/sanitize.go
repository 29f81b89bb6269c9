package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName rejects traversal patterns and replaces path separators
// so uploaded names are safe as object key components.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := fileNameReplacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
