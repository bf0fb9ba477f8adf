package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Output formats accepted by the render command.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// Data file formats accepted for tree and analysis input.
const (
	DataTOML = "toml"
	DataJSON = "json"
	DataYAML = "yaml"
)

// ValidateFormat checks that format is a supported render output.
func ValidateFormat(format string) error {
	switch format {
	case FormatPNG, FormatSVG, FormatDOT:
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'svg', or 'dot')", format)
}

// DataFormat returns the data format implied by path's extension.
func DataFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DataTOML, nil
	case ".json":
		return DataJSON, nil
	case ".yaml", ".yml":
		return DataYAML, nil
	}
	return "", New(ErrCodeInvalidFormat, "unsupported data file %q (must end in .toml, .json or .yaml)", filepath.Base(path))
}

// ValidateOutputPath checks an output file path before anything is rendered.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must name a file, not a directory
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}
