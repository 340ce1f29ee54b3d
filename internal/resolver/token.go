package resolver

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// tokenSelector matches the element carrying the signed request token.
	tokenSelector = "c-wiz[data-p]"

	// tokenPrefix is the non-standard lead-in Google puts on the data-p
	// attribute value.
	tokenPrefix = "%.@."

	// tokenArrayOpen replaces tokenPrefix so the value becomes a JSON array
	// tagged with the RPC request name.
	tokenArrayOpen = `["garturlreq",`
)

// extractToken parses the redirect page and returns the raw data-p attribute
// of the first c-wiz element that carries one.
func extractToken(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", &ParseError{Step: "parse redirect page", Err: err}
	}

	raw, ok := doc.Find(tokenSelector).First().Attr("data-p")
	if !ok || raw == "" {
		return "", &ParseError{Step: "extract token", Err: ErrTokenNotFound}
	}

	return raw, nil
}

// decodeToken rewrites the token prefix into a JSON array literal and decodes
// it. Numbers are kept as json.Number so re-serializing the payload does not
// change them.
func decodeToken(raw string) ([]any, error) {
	rewritten := strings.ReplaceAll(raw, tokenPrefix, tokenArrayOpen)

	dec := json.NewDecoder(strings.NewReader(rewritten))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Step: "decode token", Err: err}
	}

	seq, ok := v.([]any)
	if !ok {
		return nil, &ParseError{Step: "decode token", Err: ErrTokenNotArray}
	}

	return seq, nil
}
