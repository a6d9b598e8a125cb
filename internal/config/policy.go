package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// emptyPolicy is the default task role policy document.
const emptyPolicy = "{}"

// LoadPolicy reads and re-serializes the IAM policy document at path.
// A missing file yields the empty policy document; a malformed one is
// an *Error.
func LoadPolicy(path string) (string, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyPolicy, nil
		}
		return "", &Error{Path: path, Err: fmt.Errorf("failed to read policy file: %w", err)}
	}

	// Round-trip through json to reject malformed documents and strip
	// formatting.
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", &Error{Path: path, Err: fmt.Errorf("invalid policy JSON: %w", err)}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", &Error{Path: path, Err: fmt.Errorf("failed to serialize policy: %w", err)}
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
