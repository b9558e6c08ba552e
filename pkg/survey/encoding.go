package survey

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/matzehuels/partynet/pkg/errors"
)

// Supported input encodings.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

// ValidEncodings is the set of accepted encoding names.
var ValidEncodings = map[string]bool{
	EncodingUTF8:     true,
	EncodingShiftJIS: true,
}

// ValidateEncoding checks that name is a supported input encoding.
func ValidateEncoding(name string) error {
	if !ValidEncodings[normalizeEncoding(name)] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid encoding: %q (must be one of: utf-8, shift_jis)", name)
	}
	return nil
}

func normalizeEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8
	case "shift_jis", "shift-jis", "sjis", "cp932":
		return EncodingShiftJIS
	default:
		return name
	}
}

// decode wraps r so that it yields UTF-8 text.
func decode(r io.Reader, name string) (io.Reader, error) {
	switch normalizeEncoding(name) {
	case EncodingUTF8:
		// BOMOverride strips a UTF-8 BOM and honours a UTF-16 one.
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingShiftJIS:
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, ValidateEncoding(name)
	}
}
