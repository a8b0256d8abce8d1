package errors

import (
	"math"
	"strings"
	"unicode"
)

// Output formats understood by the pipeline.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks the zoom factor invariant: finite and strictly positive.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return New(ErrCodeInvalidView, "scale must be a finite number > 0, got %v", scale)
	}
	return nil
}

// ValidateSize checks viewport dimensions: finite and not negative.
func ValidateSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return New(ErrCodeInvalidView, "size must be finite and >= 0, got %vx%v", width, height)
		}
	}
	return nil
}

// ValidatePersonID validates a person identifier from a layout document.
// IDs end up in cache keys and log lines, so control characters are
// rejected along with empty and oversized values.
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLayout, "person id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidLayout, "person id too long (max 256 characters)")
	}
	if strings.IndexFunc(id, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidLayout, "person id contains invalid control characters")
	}
	return nil
}
