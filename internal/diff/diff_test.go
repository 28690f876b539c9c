package diff

import (
	"fmt"
	"strings"
	"testing"
)

func numbered(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	return b.String()
}

func TestCompute_Counts(t *testing.T) {
	before := numbered(10)
	after := "1\n2\n3\nX\nY\n7\n8\n9\n10\n"

	lines := Compute(before, after)
	added, removed := Counts(lines)
	if added != 2 || removed != 3 {
		t.Errorf("Counts() = +%d -%d, want +2 -3", added, removed)
	}
	if len(lines) != 12 {
		t.Errorf("len(Compute()) = %d, want 12", len(lines))
	}
}

func TestCompute_Identical(t *testing.T) {
	lines := Compute("a\nb\n", "a\nb\n")
	if added, removed := Counts(lines); added != 0 || removed != 0 {
		t.Errorf("identical input produced +%d -%d", added, removed)
	}
	if hunks := Hunks(lines, 3); len(hunks) != 0 {
		t.Errorf("identical input produced %d hunks", len(hunks))
	}
}

func TestHunks(t *testing.T) {
	tests := []struct {
		name       string
		before     string
		after      string
		context    int
		wantHeader []string
	}{
		{
			name:       "single change with context",
			before:     numbered(10),
			after:      "1\n2\n3\nX\nY\n7\n8\n9\n10\n",
			context:    1,
			wantHeader: []string{"-3,5 +3,4"},
		},
		{
			name:       "distant changes split",
			before:     numbered(20),
			after:      strings.Replace(strings.Replace(numbered(20), "2\n", "two\n", 1), "19\n", "nineteen\n", 1),
			context:    2,
			wantHeader: []string{"-1,4 +1,4", "-17,4 +17,4"},
		},
		{
			name:       "close changes merge",
			before:     numbered(10),
			after:      strings.Replace(strings.Replace(numbered(10), "3\n", "c\n", 1), "6\n", "f\n", 1),
			context:    2,
			wantHeader: []string{"-1,8 +1,8"},
		},
		{
			name:       "pure insertion",
			before:     "a\nb\n",
			after:      "a\nnew\nb\n",
			context:    0,
			wantHeader: []string{"-1,0 +2,1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunks := Hunks(Compute(tt.before, tt.after), tt.context)
			var got []string
			for _, h := range hunks {
				got = append(got, fmt.Sprintf("-%d,%d +%d,%d", h.OldStart, h.OldCount, h.NewStart, h.NewCount))
			}
			if strings.Join(got, "|") != strings.Join(tt.wantHeader, "|") {
				t.Errorf("hunks = %v, want %v", got, tt.wantHeader)
			}
		})
	}
}

func TestRender(t *testing.T) {
	out := Render(numbered(10), "1\n2\n3\nX\nY\n7\n8\n9\n10\n", Options{Path: "a.txt", Context: 1})
	for _, want := range []string{"--- a/a.txt\n", "+++ b/a.txt\n", "@@ -3,5 +3,4 @@\n", " 3\n", "-4\n", "-6\n", "+X\n", "+Y\n", " 7\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, " 2\n") {
		t.Errorf("Render() included lines outside the context:\n%s", out)
	}
	if Render("same\n", "same\n", Options{}) != "" {
		t.Error("Render() of identical input should be empty")
	}
}

func TestRender_Truncates(t *testing.T) {
	out := Render("short\n", strings.Repeat("w", 50)+"\n", Options{Width: 10})
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(line, "+") && len([]rune(line)) > 10 {
			t.Errorf("line not truncated: %q", line)
		}
	}
}

func TestSummary(t *testing.T) {
	if got := Summary("a\nb\n", "a\nc\nd\n"); got != "+2 -1" {
		t.Errorf("Summary() = %q, want +2 -1", got)
	}
}
