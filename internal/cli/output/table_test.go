package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableFormatter_Format_Table(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "VALUE"},
		Rows: [][]string{
			{"key1", "value1"},
			{"longer-key", "value2"},
		},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "NAME        VALUE\nkey1        value1\nlonger-key  value2\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Format_TableValue(t *testing.T) {
	table := Table{
		Headers: []string{"COL"},
		Rows:    [][]string{{"data"}},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "data") {
		t.Error("Format() missing data from Table value")
	}
}

func TestTableFormatter_Format_NoHeaders(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "VALUE"},
		Rows:    [][]string{{"key1", "value1"}},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "NAME") {
		t.Error("Format() should not contain headers when NoHeaders=true")
	}
	if !strings.Contains(output, "key1") {
		t.Error("Format() missing row data")
	}
}

func TestTableFormatter_Format_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("Format(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format(nil) = %q, want empty", buf.String())
	}
}

func TestTableFormatter_Format_NestedMap(t *testing.T) {
	data := map[string]any{
		"log": map[string]any{
			"level":   "info",
			"backups": 5,
		},
		"redact": map[string]any{
			"keys":        []string{"password", "pin"},
			"placeholder": "***",
		},
		"metrics": map[string]any{"addr": ""},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		"KEY                 VALUE",
		"log.backups         5",
		"log.level           info",
		"metrics.addr        -",
		"redact.keys         password, pin",
		"redact.placeholder  ***",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTableFormatter_Format_Struct(t *testing.T) {
	data := struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
		hidden    string
	}{Version: "1.0.0", GoVersion: "go1.24.4", hidden: "x"}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "go_version  go1.24.4") {
		t.Errorf("Format() = %q, missing go_version row", output)
	}
	if strings.Contains(output, "hidden") {
		t.Error("unexported fields should not be rendered")
	}
}

func TestTableFormatter_Format_SliceOfObjects(t *testing.T) {
	data := []map[string]any{
		{"name": "add", "result": 8},
		{"name": "divide", "error": "division by zero"},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "ERROR NAME RESULT" {
		t.Errorf("headers = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "- add 8" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestTableFormatter_Format_Scalars(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"string", "1m 5.00s", "1m 5.00s\n"},
		{"number", 2.5, "2.5\n"},
		{"bool", true, "true\n"},
		{"list", []string{"a", "b"}, "VALUE\na\nb\n"},
		{"empty list", []int{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TableFormatter{}).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Format() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTableFormatter_Format_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("Format() should fail for values JSON cannot encode")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "-"},
		{"empty string", "", "-"},
		{"string", "hello", "hello"},
		{"integer", float64(42), "42"},
		{"float", 3.25, "3.25"},
		{"false", false, "false"},
		{"empty list", []any{}, "-"},
		{"nested list", []any{"a", map[string]any{"k": "v"}}, `a, {"k":"v"}`},
		{"empty map", map[string]any{}, "-"},
		{"map", map[string]any{"k": float64(1)}, `{"k":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTable_AddRowAndHeaders(t *testing.T) {
	table := &Table{}
	table.SetHeaders("A", "B")
	table.AddRow("1", "2")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != "A  B\n1  2\n" {
		t.Errorf("Render() = %q", buf.String())
	}
}
