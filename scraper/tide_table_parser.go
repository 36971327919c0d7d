// scraper/tide_table_parser.go
package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gewnthar/mareas/backend/models"
)

// DefaultTableSelector matches the tide table on SHOA port pages.
const DefaultTableSelector = "table.table-bordered"

// lowTideToken marks a "Bajamar" row; anything else is treated as high tide.
const lowTideToken = "baja"

// ParseTideTable extracts tide events from the rows of the table matched by tableSelector.
// Rows with fewer than 3 cells are skipped. No matching rows is a *ParseError.
func ParseTideTable(r io.Reader, tableSelector string) ([]models.TideEvent, error) {
	if tableSelector == "" {
		tableSelector = DefaultTableSelector
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Selector: tableSelector, Err: err}
	}

	var events []models.TideEvent
	doc.Find(tableSelector).Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		events = append(events, models.TideEvent{
			Kind:   classifyTide(label),
			Time:   strings.TrimSpace(cells.Eq(1).Text()),
			Height: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	if len(events) == 0 {
		return nil, &ParseError{Selector: tableSelector, Err: ErrNoTideRows}
	}
	return events, nil
}

func classifyTide(label string) models.TideKind {
	if strings.Contains(strings.ToLower(label), lowTideToken) {
		return models.TideLow
	}
	return models.TideHigh
}
