package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// responsePrefix is the anti-hijacking guard the endpoint puts ahead of the
// JSON body. The body is not parseable until it is removed.
const responsePrefix = ")]}'"

// stripPrefix removes the guard prefix from the RPC response body. A body
// without it means the endpoint did not answer the way this protocol
// expects, so that is an error rather than something to paper over.
func stripPrefix(body []byte) ([]byte, error) {
	if !bytes.HasPrefix(body, []byte(responsePrefix)) {
		return nil, &ParseError{Step: "strip response prefix", Err: ErrMissingPrefix}
	}
	return body[len(responsePrefix):], nil
}

// extractArticleURL digs the article URL out of a stripped response body.
// The body is a JSON array; element [0][2] is a JSON-encoded string whose
// decoded form is another array carrying the URL at index 1.
func extractArticleURL(body []byte) (string, error) {
	var outer []any
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", &ParseError{Step: "decode response", Err: err}
	}

	if len(outer) == 0 {
		return "", shapeError("response array is empty")
	}
	first, ok := outer[0].([]any)
	if !ok {
		return "", shapeError("element [0] is not an array")
	}
	if len(first) < 3 {
		return "", shapeError("element [0] has %d elements, need at least 3", len(first))
	}
	encoded, ok := first[2].(string)
	if !ok {
		return "", shapeError("element [0][2] is not a string")
	}

	var inner []any
	if err := json.Unmarshal([]byte(encoded), &inner); err != nil {
		return "", &ParseError{Step: "decode embedded result", Err: err}
	}

	if len(inner) < 2 {
		return "", shapeError("embedded result has %d elements, need at least 2", len(inner))
	}
	articleURL, ok := inner[1].(string)
	if !ok {
		return "", shapeError("embedded result element [1] is not a string")
	}
	if articleURL == "" {
		return "", shapeError("embedded result element [1] is empty")
	}

	return articleURL, nil
}

// shapeError builds a ParseError for a structurally wrong response.
func shapeError(format string, args ...any) error {
	return &ParseError{
		Step: "extract article url",
		Err:  fmt.Errorf("%w: %s", ErrUnexpectedShape, fmt.Sprintf(format, args...)),
	}
}
