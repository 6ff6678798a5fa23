// Package payload builds request bodies for create and update commands from
// a --data document and --field overrides.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmpty is returned when neither --data nor --field supplied anything.
var ErrEmpty = errors.New("no payload: pass --data or at least one --field")

// Build merges data and fields into a single object. data is a JSON object,
// "@path" to read one from a file, or "@-" for stdin. Each field is
// key=value; a value that parses as JSON keeps its type, anything else is
// sent as a string. Fields override keys from data.
func Build(data string, fields []string, stdin io.Reader) (map[string]any, error) {
	obj := map[string]any{}

	if strings.TrimSpace(data) != "" {
		raw, err := readData(data, stdin)
		if err != nil {
			return nil, err
		}
		obj, err = decodeObject(raw)
		if err != nil {
			return nil, err
		}
	}

	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --field %q: expected key=value", f)
		}
		obj[key] = parseValue(value)
	}

	if len(obj) == 0 {
		return nil, ErrEmpty
	}
	return obj, nil
}

func readData(data string, stdin io.Reader) ([]byte, error) {
	path, ok := strings.CutPrefix(data, "@")
	if !ok {
		return []byte(data), nil
	}
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read --data from stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read --data file: %w", err)
	}
	return raw, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("--data must be a JSON object: %w", err)
	}
	if obj == nil {
		return nil, errors.New("--data must be a JSON object, got null")
	}
	if dec.More() {
		return nil, errors.New("--data must contain a single JSON object")
	}
	return obj, nil
}

func parseValue(value string) any {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return value
	}
	return v
}
