// models/tide.go
package models

// TideKind labels a tide extreme the way SHOA tables and API consumers name it.
type TideKind string

const (
	TideHigh TideKind = "Pleamar"
	TideLow  TideKind = "Bajamar"
)

// SourceSHOA is the fuente reported for scraped tide tables.
const SourceSHOA = "SHOA"

// TideEvent is one parsed row of a tide table.
// Time and Height are passed through as the page shows them.
type TideEvent struct {
	Kind   TideKind `json:"tipo"`
	Time   string   `json:"hora"`   // e.g. "03:15"
	Height string   `json:"altura"` // e.g. "1.2m"
}

// TideReport is the response for one port on one calendar day (UTC, YYYY-MM-DD).
type TideReport struct {
	Source string      `json:"fuente"`
	PortID string      `json:"puerto"`
	Date   string      `json:"fecha"`
	Events []TideEvent `json:"mareas"`
}
