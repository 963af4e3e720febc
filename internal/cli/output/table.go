package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// TableFormatter formats data as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats data as a table.
//
// A Table renders as-is. Other values are first normalized through their
// JSON form: objects become KEY/VALUE rows with nested keys joined by dots,
// lists of objects become one row per element, and scalars print on a
// single line.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch t := data.(type) {
	case *Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	v, err := normalize(data)
	if err != nil {
		return err
	}

	switch v := v.(type) {
	case map[string]any:
		return mapToTable(v).RenderWithOptions(w, f.NoHeaders)
	case []any:
		return sliceToTable(v).RenderWithOptions(w, f.NoHeaders)
	default:
		_, err := fmt.Fprintln(w, formatValue(v))
		return err
	}
}

// normalize converts data to the generic form encoding/json decodes into.
func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("format table: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("format table: %w", err)
	}
	return v, nil
}

// mapToTable converts an object to sorted KEY/VALUE rows.
func mapToTable(m map[string]any) *Table {
	table := &Table{Headers: []string{"KEY", "VALUE"}}

	flat := make(map[string]string)
	flatten("", m, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		table.AddRow(k, flat[k])
	}
	return table
}

func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flatten(key, nested, out)
			continue
		}
		out[key] = formatValue(v)
	}
}

// sliceToTable renders a list. Lists of objects get one column per key.
func sliceToTable(items []any) *Table {
	if len(items) == 0 {
		return &Table{}
	}

	var columns []string
	seen := make(map[string]bool)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			columns = nil
			break
		}
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	if columns == nil {
		table := &Table{Headers: []string{"VALUE"}}
		for _, item := range items {
			table.AddRow(formatValue(item))
		}
		return table
	}

	sort.Strings(columns)
	table := &Table{}
	for _, c := range columns {
		table.Headers = append(table.Headers, strings.ToUpper(c))
	}
	for _, item := range items {
		obj := item.(map[string]any)
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = formatValue(obj[c])
		}
		table.AddRow(row...)
	}
	return table
}

// formatValue formats a normalized value for a single cell.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case []any:
		if len(v) == 0 {
			return "-"
		}
		parts := make([]string, len(v))
		for i, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				raw, _ := json.Marshal(item)
				parts[i] = string(raw)
			default:
				parts[i] = formatValue(item)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if len(v) == 0 {
			return "-"
		}
		raw, _ := json.Marshal(v)
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}

// FormatNumber formats f without exponent or trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
