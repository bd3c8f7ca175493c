package cli

import (
	"io"

	"github.com/mrz1836/go-slip39/internal/output"
)

// writeJSON encodes v as indented JSON, matching the convention
// output.Formatter uses for --format=json so raw values (share lists,
// backup manifests) and Formatter-routed values render identically.
func writeJSON(w io.Writer, v any) error {
	return output.EncodeJSON(w, v)
}
