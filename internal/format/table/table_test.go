package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"Name", "John Doe"},
		{"Address", "123 Main St"},
	}, nil)
	want := []string{
		"Name     John Doe",
		"Address  123 Main St",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatRightAlignment(t *testing.T) {
	got := Format([][]string{
		{"a", "1"},
		{"bb", "100"},
	}, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"a     1",
		"bb  100",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSkipsTrailingEmptyCells(t *testing.T) {
	got := Format([][]string{
		{"Name", ""},
		{"Email", "john.doe@example.com"},
	}, nil)
	want := []string{
		"Name",
		"Email  john.doe@example.com",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatWideRunes(t *testing.T) {
	got := Format([][]string{
		{"日本", "x"},
		{"ab", "y"},
	}, nil)
	want := []string{
		"日本  x",
		"ab    y",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
