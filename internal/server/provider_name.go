package server

import (
	"fmt"
	"strings"

	"baseball-games-service/internal/schedule"
)

// normalizeProviderName returns a lower-cased provider name, deriving one
// from the instance type when not explicitly configured. Keeps naming
// consistent across metrics and logs.
func normalizeProviderName(raw string, provider schedule.Provider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
