package scraper

import (
	"errors"
	"strings"
	"testing"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shoaPage = `<html><body>
<h1>Tablas de marea</h1>
<table class="table table-bordered">
  <thead><tr><th>Estado</th><th>Hora</th><th>Altura</th></tr></thead>
  <tbody>
    <tr><td> Bajamar </td><td>03:15</td><td>1.2m</td></tr>
    <tr><td>Pleamar</td><td> 09:27 </td><td>1.6m</td></tr>
    <tr><td>BAJAMAR</td><td>15:40</td><td>0.3m</td></tr>
    <tr><td>Pleamar</td><td>21:58</td><td> 1.5m </td></tr>
  </tbody>
</table>
</body></html>`

func TestParseTideTable(t *testing.T) {
	events, err := ParseTideTable(strings.NewReader(shoaPage), "table.table-bordered")
	require.NoError(t, err)

	want := []models.TideEvent{
		{Kind: models.TideLow, Time: "03:15", Height: "1.2m"},
		{Kind: models.TideHigh, Time: "09:27", Height: "1.6m"},
		{Kind: models.TideLow, Time: "15:40", Height: "0.3m"},
		{Kind: models.TideHigh, Time: "21:58", Height: "1.5m"},
	}
	assert.Equal(t, want, events)
}

func TestParseTideTable_SingleRow(t *testing.T) {
	html := `<table class="table-bordered"><tbody><tr><td>Bajamar</td><td>03:15</td><td>1.2m</td></tr></tbody></table>`

	events, err := ParseTideTable(strings.NewReader(html), "")
	require.NoError(t, err)
	assert.Equal(t, []models.TideEvent{{Kind: models.TideLow, Time: "03:15", Height: "1.2m"}}, events)
}

func TestParseTideTable_Classification(t *testing.T) {
	tests := []struct {
		label string
		want  models.TideKind
	}{
		{"Bajamar", models.TideLow},
		{"marea baja", models.TideLow},
		{"BAJA", models.TideLow},
		{"Pleamar", models.TideHigh},
		{"Alta", models.TideHigh},
		{"", models.TideHigh},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			html := `<table class="table-bordered"><tbody><tr><td>` + tt.label + `</td><td>x</td><td>y</td></tr></tbody></table>`
			events, err := ParseTideTable(strings.NewReader(html), DefaultTableSelector)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Kind)
		})
	}
}

func TestParseTideTable_SkipsShortRows(t *testing.T) {
	html := `<table class="table-bordered"><tbody>
		<tr><td colspan="3">Lunes 19</td></tr>
		<tr><td>Pleamar</td><td>09:27</td><td>1.6m</td><td>extra</td></tr>
		<tr><td>Bajamar</td><td>15:40</td></tr>
	</tbody></table>`

	events, err := ParseTideTable(strings.NewReader(html), DefaultTableSelector)
	require.NoError(t, err)
	assert.Equal(t, []models.TideEvent{{Kind: models.TideHigh, Time: "09:27", Height: "1.6m"}}, events)
}

func TestParseTideTable_NoRows(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"empty page", ``},
		{"different table class", `<table class="striped"><tbody><tr><td>Bajamar</td><td>03:15</td><td>1.2m</td></tr></tbody></table>`},
		{"rows too short", `<table class="table-bordered"><tbody><tr><td>Bajamar</td><td>03:15</td></tr></tbody></table>`},
		{"header only", `<table class="table-bordered"><thead><tr><th>a</th><th>b</th><th>c</th></tr></thead></table>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ParseTideTable(strings.NewReader(tt.html), DefaultTableSelector)
			assert.Nil(t, events)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %v", err)
			assert.Equal(t, DefaultTableSelector, perr.Selector)
			assert.ErrorIs(t, err, ErrNoTideRows)
		})
	}
}
