package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed means the document could not be parsed into the bundle shape
// at all. Missing optional fields never cause this; they decode to zero
// values and are defaulted downstream.
var ErrMalformed = errors.New("malformed bundle")

// Encode serializes a bundle to its JSON document form.
func Encode(b *Bundle) ([]byte, error) {
	out, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	return out, nil
}

// Decode parses a JSON document into a Bundle. Absent arrays come back
// empty; the only failure mode is a document that is not the expected shape.
func Decode(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &b, nil
}
