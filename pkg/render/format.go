package render

import (
	"strings"

	"github.com/matzehuels/cdgpath/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists the formats accepted by [ParseFormat].
var Formats = []Format{FormatText, FormatDOT, FormatSVG}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want text, dot or svg)", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}
