// scraper/errors.go
package scraper

import (
	"errors"
	"fmt"
)

// ErrNoTideRows means the page contained no table rows matching the expected structure.
var ErrNoTideRows = errors.New("no tide rows found")

// FetchError wraps a transport failure or non-2xx response from an upstream.
type FetchError struct {
	Op         string // e.g. "shoa", "stormglass"
	URL        string
	StatusCode int // 0 when the request never got a response
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("%s: GET %s: status code %d", e.Op, e.URL, e.StatusCode)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	return fmt.Sprintf("%s: GET %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means fetched content did not have the expected structure.
type ParseError struct {
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing tide table with selector '%s': %v", e.Selector, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
