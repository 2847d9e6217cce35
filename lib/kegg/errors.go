package kegg

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrNoImage = errors.New("no pathway image in mapper response")

// StatusError is returned when KEGG answers with an unexpected HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func newStatusError(url string, resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	}
}
