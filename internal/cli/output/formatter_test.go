package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" table ", FormatTable, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML).(*YAMLFormatter); !ok {
		t.Error("expected YAMLFormatter")
	}
	if _, ok := NewFormatter(FormatTable).(*TableFormatter); !ok {
		t.Error("expected TableFormatter")
	}
	// default to table
	if _, ok := NewFormatter("unknown").(*TableFormatter); !ok {
		t.Error("expected TableFormatter for unknown format")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	t.Run("indented", func(t *testing.T) {
		data := struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}{Name: "test", Value: 42}

		var buf bytes.Buffer
		if err := (&JSONFormatter{}).Format(&buf, data); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		want := "{\n  \"name\": \"test\",\n  \"value\": 42\n}\n"
		if buf.String() != want {
			t.Errorf("Format() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("compact", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&JSONFormatter{Compact: true}).Format(&buf, map[string]int{"key": 123}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if buf.String() != "{\"key\":123}\n" {
			t.Errorf("Format() = %q", buf.String())
		}
	})

	t.Run("no HTML escaping", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&JSONFormatter{Compact: true}).Format(&buf, "<masked>"); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if buf.String() != "\"<masked>\"\n" {
			t.Errorf("Format() = %q", buf.String())
		}
	})

	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&JSONFormatter{}).Format(&buf, nil); err != nil {
			t.Fatalf("Format(nil) error = %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "null" {
			t.Errorf("Format(nil) = %q, want 'null'", got)
		}
	})
}

func TestYAMLFormatter_Format(t *testing.T) {
	data := map[string]any{
		"log": map[string]any{
			"level": "info",
			"keys":  []string{"password", "pin"},
		},
	}

	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"log:\n", "\n  level: info\n", "- password\n", "- pin\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() = %q, missing %q", out, want)
		}
	}
	if strings.Index(out, "keys:") > strings.Index(out, "level:") {
		t.Errorf("keys should be sorted before level: %q", out)
	}
}

func TestYAMLFormatter_StructTags(t *testing.T) {
	data := struct {
		BuildTime string `yaml:"build_time"`
	}{BuildTime: "now"}

	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "build_time: now\n" {
		t.Errorf("Format() = %q", buf.String())
	}
}
