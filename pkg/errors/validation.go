package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxExprLength bounds predicate text read from graph files.
const MaxExprLength = 4096

// ValidateNodeID rejects negative node ids. Id 0 is a valid node; it is also
// the conventional parent of top-level nodes in record streams.
func ValidateNodeID(id int) error {
	if id < 0 {
		return New(ErrCodeInvalidInput, "node id %d is negative", id)
	}
	return nil
}

// ValidateExpr checks predicate text for length and control characters.
// Tabs are allowed; newlines are not, since outlines print one node per line.
func ValidateExpr(expr string) error {
	if len(expr) > MaxExprLength {
		return New(ErrCodeInvalidInput, "expression too long (max %d bytes)", MaxExprLength)
	}
	for _, r := range expr {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "expression contains control character %q", r)
		}
	}
	return nil
}

// ValidateGraphPath checks that path names a file with a supported graph
// extension and returns the lowercased extension without the dot.
func ValidateGraphPath(path string) (string, error) {
	if path == "" {
		return "", New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", New(ErrCodeInvalidInput, "path contains a null byte")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json", "toml":
		return ext, nil
	case "":
		return "", New(ErrCodeInvalidFormat, "%s: missing extension (want .json or .toml)", path)
	}
	return "", New(ErrCodeInvalidFormat, "%s: unsupported extension .%s (want .json or .toml)", path, ext)
}
