package output

import (
	"bytes"
	"strings"
	"testing"

	"taskui/internal/service"
)

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	tasks := []service.Task{{ID: 1, Title: "A", Description: "d", Status: "pending"}}

	if err := FormatTable(&buf, tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "ID  TITLE  DESCRIPTION  STATUS\n" +
		"1   A      d            pending\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer

	if err := FormatTable(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "ID  TITLE  DESCRIPTION  STATUS\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Buy milk", "Buy milk"},
		{"", "(untitled)"},
		{"   ", "(untitled)"},
		{"two\nlines", "two lines"},
		{"tab\there", "tab here"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRow_KeepsRawValues(t *testing.T) {
	got := Row(service.Task{ID: 2, Title: "", Description: "a\nb", Status: "pending"})

	expected := []string{"2", "", "a\nb", "pending"}
	if strings.Join(got, "|") != strings.Join(expected, "|") {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestFormatTable_NormalizesCells(t *testing.T) {
	var buf bytes.Buffer
	tasks := []service.Task{{ID: 1, Title: "", Description: "a\nb", Status: "pending"}}

	if err := FormatTable(&buf, tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "ID  TITLE       DESCRIPTION  STATUS\n" +
		"1   (untitled)  a b          pending\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, service.Task{ID: 5, Title: "X", Description: "Y", Status: "done"})

	expected := "id:          5\ntitle:       X\ndescription: Y\nstatus:      done\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestExport_CSV(t *testing.T) {
	data, err := Export([]service.Task{{ID: 1, Title: "a, b", Description: "", Status: "pending"}}, "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "id,title,description,status\n1,\"a, b\",,pending\n"
	if string(data) != expected {
		t.Errorf("expected %q, got %q", expected, string(data))
	}
}

func TestExport_JSONEmptyList(t *testing.T) {
	data, err := Export(nil, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", string(data))
	}
}

func TestExport_PDF(t *testing.T) {
	data, err := Export([]service.Task{{ID: 1, Title: "A", Description: strings.Repeat("long ", 40), Status: "pending"}}, "pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", data[:min(len(data), 8)])
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(nil, "xml")
	if err == nil || err.Error() != "unknown format: xml" {
		t.Errorf("expected unknown format error, got %v", err)
	}
}
