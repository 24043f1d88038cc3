package token

import (
	"strings"

	"github.com/google/uuid"
)

// Generate returns a prefixed entity identifier, e.g. "ITI-3F2A9B1C".
// The random part is the first 8 hex characters of a v4 UUID, uppercased.
func Generate(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:8])
}
