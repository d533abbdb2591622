// Package jsonvalidate checks the shape of raw request bodies before they are
// bound to structs, so extra or reordered keys are reported instead of ignored.
package jsonvalidate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrNotObject = errors.New("JSON body must be an object")

// rootKeys returns the root-level keys of a JSON object in document order.
func rootKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)

		// skip the value, whatever its depth
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return keys, nil
}

// JsonRootLevelKeyCount counts root-level keys of the JSON object in body.
func JsonRootLevelKeyCount(body string) (int, error) {
	keys, err := rootKeys([]byte(body))
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// CheckJSONOrder verifies the root-level keys appear exactly as expectedKeys.
func CheckJSONOrder(body []byte, expectedKeys []string) error {
	keys, err := rootKeys(body)
	if err != nil {
		return err
	}
	if len(keys) != len(expectedKeys) {
		return fmt.Errorf("expected keys %v, got %v", expectedKeys, keys)
	}
	for i, k := range expectedKeys {
		if keys[i] != k {
			return fmt.Errorf("invalid JSON key order: expected %q at position %d, got %q", k, i+1, keys[i])
		}
	}
	return nil
}
