package commands

import (
	"flag"
	"testing"
)

func TestParseTaskID_Valid(t *testing.T) {
	id, err := ParseTaskID([]string{"42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestParseTaskID_NoArgs(t *testing.T) {
	_, err := ParseTaskID(nil)
	if err != ErrTaskIDRequired {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}

func TestParseTaskID_Invalid(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-3", "1.5", ""} {
		_, err := ParseTaskID([]string{arg})
		if err == nil {
			t.Errorf("expected error for %q", arg)
			continue
		}
		expected := "invalid task id: " + arg
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	}
}

func TestParseTaskID_ExtraArgs(t *testing.T) {
	_, err := ParseTaskID([]string{"1", "2"})
	if err == nil || err.Error() != "unexpected argument: 2" {
		t.Errorf("expected unexpected argument error, got %v", err)
	}
}

func TestOptionalString(t *testing.T) {
	var title optionalString
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.Var(&title, "title", "")

	if err := fs.Parse([]string{"--title", ""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !title.set {
		t.Error("expected flag to be marked as set")
	}
	if title.value != "" {
		t.Errorf("expected empty value, got %q", title.value)
	}
}
