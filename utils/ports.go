// utils/ports.go
package utils

import "strings"

// NormalizePortID lowercases and trims a port identifier ("  Valparaiso " -> "valparaiso").
// SHOA page slugs are lowercase, so this keeps cache keys and URLs consistent.
func NormalizePortID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
