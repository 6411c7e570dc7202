package sim

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
)

// Summary export formats.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

var validExportFormats = map[string]bool{
	FormatJSON: true,
	FormatCBOR: true,
}

// IsValidExportFormat reports whether name is a supported summary export format.
func IsValidExportFormat(name string) bool {
	return validExportFormats[name]
}

// ExportSummary encodes rs to w in the given format.
func ExportSummary(w io.Writer, rs RunSummary, format string) error {
	switch format {
	case FormatJSON:
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(rs, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding summary as json: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		return nil
	case FormatCBOR:
		if err := cbor.NewEncoder(w).Encode(rs); err != nil {
			return fmt.Errorf("encoding summary as cbor: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q; valid: json, cbor", format)
	}
}
