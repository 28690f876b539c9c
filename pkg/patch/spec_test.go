package patch_test

import (
	"errors"
	"reflect"
	"testing"

	"linepatch/pkg/patch"
)

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    patch.Spec
		lines   int
		wantErr bool
	}{
		{name: "empty range at start", spec: patch.Spec{Start: 0, End: 0}, lines: 10},
		{name: "empty range at end", spec: patch.Spec{Start: 10, End: 10}, lines: 10},
		{name: "full coverage", spec: patch.Spec{Start: 0, End: 10}, lines: 10},
		{name: "inner range", spec: patch.Spec{Start: 3, End: 6}, lines: 10},
		{name: "empty file", spec: patch.Spec{Start: 0, End: 0}, lines: 0},
		{name: "negative start", spec: patch.Spec{Start: -1, End: 2}, lines: 10, wantErr: true},
		{name: "end past file", spec: patch.Spec{Start: 3, End: 11}, lines: 10, wantErr: true},
		{name: "inverted", spec: patch.Spec{Start: 6, End: 3}, lines: 10, wantErr: true},
		{name: "start past file", spec: patch.Spec{Start: 11, End: 11}, lines: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%d) error = %v, wantErr %v", tt.lines, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, patch.ErrRange) {
				t.Errorf("expected ErrRange, got %v", err)
			}
		})
	}
}

func TestRangeError_Message(t *testing.T) {
	err := patch.Spec{Start: 3, End: 12}.Validate(10)
	var rangeErr *patch.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *RangeError, got %T", err)
	}
	if rangeErr.Lines != 10 {
		t.Errorf("Lines = %d, want 10", rangeErr.Lines)
	}
	if got, want := err.Error(), "invalid range [3, 12): file has 10 lines"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
		{"\n\n", []string{"\n", "\n"}},
	}
	for _, tt := range tests {
		if got := patch.SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnchorLines(t *testing.T) {
	if got := patch.AnchorLines(""); got == nil || len(got) != 0 {
		t.Errorf("AnchorLines(\"\") = %#v, want empty non-nil", got)
	}
	if got := patch.AnchorLines("a\nb"); !reflect.DeepEqual(got, []string{"a\n", "b"}) {
		t.Errorf("AnchorLines() = %q", got)
	}
}

func TestSpec_HumanRange(t *testing.T) {
	if got := (patch.Spec{Start: 1303, End: 1379}).HumanRange(); got != "lines 1304-1379" {
		t.Errorf("HumanRange() = %q", got)
	}
	if got := (patch.Spec{Start: 4, End: 4}).HumanRange(); got != "insert before line 5" {
		t.Errorf("HumanRange() = %q", got)
	}
}

func TestSpec_Hash(t *testing.T) {
	a := patch.NewSpec(1, 2, "x\n")
	b := patch.NewSpec(1, 2, "x\n")
	c := patch.NewSpec(1, 3, "x\n")
	if a.Hash() != b.Hash() {
		t.Error("equal specs should hash equally")
	}
	if a.Hash() == c.Hash() {
		t.Error("different bounds should hash differently")
	}
}
