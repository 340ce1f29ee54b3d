package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// rpcMethodID is the batch-execute method that resolves article
	// redirects.
	rpcMethodID = "Fbv4je"

	// trimCount and keepCount describe the payload reshaping: the token
	// sequence loses its last trimCount elements, then gets the last
	// keepCount elements of the original back.
	trimCount = 6
	keepCount = 2

	// minTokenElements is the shortest token sequence the reshaping is
	// defined for.
	minTokenElements = trimCount + keepCount
)

// buildPayload reshapes the decoded token sequence into the RPC payload:
// seq[0:n-6] followed by seq[n-2:n], always n-4 elements long.
func buildPayload(seq []any) ([]any, error) {
	n := len(seq)
	if n < minTokenElements {
		return nil, &ParseError{
			Step: "build payload",
			Err:  fmt.Errorf("%w: got %d elements, need at least %d", ErrTokenTooShort, n, minTokenElements),
		}
	}

	payload := make([]any, 0, n-trimCount+keepCount)
	payload = append(payload, seq[:n-trimCount]...)
	payload = append(payload, seq[n-keepCount:]...)

	return payload, nil
}

// buildEnvelope serializes the payload and wraps it in the batch-execute
// request envelope, returning the value for the f.req form field. The
// payload is encoded twice on purpose: the envelope carries it as a JSON
// string, not as a nested array.
func buildEnvelope(payload []any) (string, error) {
	inner, err := marshalJSON(payload)
	if err != nil {
		return "", &ParseError{Step: "encode payload", Err: err}
	}

	envelope := []any{[]any{[]any{rpcMethodID, string(inner), "null", "generic"}}}

	out, err := marshalJSON(envelope)
	if err != nil {
		return "", &ParseError{Step: "encode envelope", Err: err}
	}

	return string(out), nil
}

// marshalJSON encodes v without HTML escaping, the way a browser serializes
// this payload. json.Marshal would rewrite <, > and & into \u escapes.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
