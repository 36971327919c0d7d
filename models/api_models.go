// models/api_models.go
package models

// ErrorResponse is the JSON body for failed tide requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Detalle string `json:"detalle,omitempty"`
}

// SeedZonesRequest is the optional JSON body for /api/admin/seed-zones.
// An empty Source falls back to the configured zones CSV.
type SeedZonesRequest struct {
	Source string `json:"source"`
}
