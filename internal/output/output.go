// Package output renders untyped API payloads as tables, detail views or
// indented JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"quickdeployer/qd/internal/tui/styles"

	"golang.org/x/term"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// envelopeKeys are the object keys that may wrap the interesting part of a
// response, checked in order.
var envelopeKeys = []string{"data", "projects", "servers", "items", "results", "project", "server"}

// preferredColumns are shown first, in this order, whenever rows carry them.
var preferredColumns = []string{"id", "name", "status"}

// maxColumns caps the fallback column set for rows with none of the
// preferred keys.
const maxColumns = 6

// ValidateFormat returns an error for anything other than table or json.
func ValidateFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (valid: table, json)", format)
	}
}

// IsTerminal reports whether w is a terminal, which enables coloured output.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Write renders payload in format. Table output uses Table for lists and
// Detail for single objects.
func Write(w io.Writer, payload any, format string, list bool) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if format == FormatJSON {
		return JSON(w, payload)
	}
	if list {
		return Table(w, payload, IsTerminal(w))
	}
	return Detail(w, payload, IsTerminal(w))
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Unwrap strips a single envelope object such as {"data": {...}}. Payloads
// with more than one key are returned unchanged.
func Unwrap(payload any) any {
	obj, ok := payload.(map[string]any)
	if !ok || len(obj) != 1 {
		return payload
	}
	for _, key := range envelopeKeys {
		if inner, ok := obj[key]; ok {
			return inner
		}
	}
	return payload
}

// Rows extracts a list of objects from payload: either a top-level array or
// an array stored under one of the envelope keys. Non-object elements are
// skipped.
func Rows(payload any) ([]map[string]any, bool) {
	var list []any
	switch v := payload.(type) {
	case []any:
		list = v
	case map[string]any:
		for _, key := range envelopeKeys {
			if inner, ok := v[key].([]any); ok {
				list = inner
				break
			}
		}
		if list == nil {
			return nil, false
		}
	default:
		return nil, false
	}

	rows := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			rows = append(rows, obj)
		}
	}
	return rows, true
}

// Field returns the scalar value stored at key in payload, looking through a
// single envelope object.
func Field(payload any, key string) (string, bool) {
	for _, candidate := range []any{payload, Unwrap(payload)} {
		obj, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := obj[key]; ok && v != nil {
			return Scalar(v), true
		}
	}
	return "", false
}

// Scalar formats a decoded JSON value for a table cell.
func Scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case json.Number:
		return val.String()
	case bool, float64, int, int64:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

// Table renders a list payload as a table. Payloads that do not contain a
// list fall back to Detail. When styled is set, status cells are coloured.
func Table(w io.Writer, payload any, styled bool) error {
	rows, ok := Rows(payload)
	if !ok {
		return Detail(w, payload, styled)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}

	cols := columns(rows)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	headers := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(c)
		rules[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	cells := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			cells[i] = cell(c, row[c], styled)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Detail renders a single object as a vertical key/value list. Preferred
// keys come first, the rest sorted. Non-object payloads are written as JSON.
func Detail(w io.Writer, payload any, styled bool) error {
	if payload == nil {
		_, err := fmt.Fprintln(w, "(empty response)")
		return err
	}

	obj, ok := Unwrap(payload).(map[string]any)
	if !ok {
		return JSON(w, payload)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sortKeys(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		label := k + ":"
		if styled {
			label = styles.Label.Render(label)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", label, cell(k, obj[k], styled))
	}
	return tw.Flush()
}

func cell(key string, v any, styled bool) string {
	text := Scalar(v)
	if styled && key == "status" && text != "-" {
		return styles.StatusIndicator(text)
	}
	return text
}

// columns picks the preferred columns present in any row, or otherwise the
// sorted scalar keys of all rows.
func columns(rows []map[string]any) []string {
	var cols []string
	for _, c := range preferredColumns {
		for _, row := range rows {
			if _, ok := row[c]; ok {
				cols = append(cols, c)
				break
			}
		}
	}
	if len(cols) > 0 {
		return cols
	}

	seen := map[string]bool{}
	for _, row := range rows {
		for k, v := range row {
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			seen[k] = true
		}
	}
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	if len(cols) > maxColumns {
		cols = cols[:maxColumns]
	}
	return cols
}

func sortKeys(keys []string) {
	rank := func(k string) int {
		if i := slices.Index(preferredColumns, k); i >= 0 {
			return i
		}
		return len(preferredColumns)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
}
