// Package debug provides debugging utilities for local development only (not for production use).
package debug

import (
	"encoding/json"
	"io"

	"github.com/lanternworks/lantern-common/logger"
)

// DumpJSON dumps the given value as JSON to the given writer.
func DumpJSON(v any, w io.Writer) {
	encoder := json.NewEncoder(w)

	// JSON may have URLs with special symbols which shouldn't be escaped. Ex: `&`.
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		logger.Fatal("error marshaling to JSON: %w", "error", err)
	}
}
