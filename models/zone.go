// models/zone.go
package models

import (
	"encoding/json"
	"time"
)

// Zone is a tide zone registered for the scheduled refresh.
// CSV tags match the header of the zones seed file (id,lat,lng).
type Zone struct {
	ID  string  `csv:"id" db:"id" json:"id"`
	Lat float64 `csv:"lat" db:"lat" json:"lat"`
	Lng float64 `csv:"lng" db:"lng" json:"lng"`
}

// DailyMareaDoc is the persisted result of a refresh for one zone.
// Mareas holds the extreme records exactly as the marine API returned them.
type DailyMareaDoc struct {
	ZoneID              string            `db:"zone_id" json:"zonaId"`
	Mareas              []json.RawMessage `db:"mareas_json" json:"mareas"`
	UltimaActualizacion time.Time         `db:"ultima_actualizacion" json:"ultimaActualizacion"`
}
