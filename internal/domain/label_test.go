package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLabels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Label
	}{
		{"empty", "", []Label{}},
		{"whitespace only", "   ", []Label{}},
		{"single", "work", []Label{{Text: "work"}}},
		{"trims and drops empty segments", "a ; b ;; c", []Label{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
		{"leading and trailing separators", ";a;", []Label{{Text: "a"}}},
		{"only separators", " ; ;; ", []Label{}},
		{"duplicates kept in order", "x;y;x", []Label{{Text: "x"}, {Text: "y"}, {Text: "x"}}},
		{"inner spaces preserved", " team lead ; ops ", []Label{{Text: "team lead"}, {Text: "ops"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLabels(tt.input)
			if got == nil {
				t.Fatal("ParseLabels() returned nil, want non-nil slice")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLabels(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLabelsString(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		want   string
	}{
		{"nil", nil, ""},
		{"empty", []Label{}, ""},
		{"single", []Label{{Text: "a"}}, "a"},
		{"no trailing separator", []Label{{Text: "a"}, {Text: "b"}, {Text: "c"}}, "a;b;c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelsString(tt.labels); got != tt.want {
				t.Errorf("LabelsString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabels_RoundTrip(t *testing.T) {
	cases := [][]Label{
		{},
		{{Text: "a"}},
		{{Text: "prod"}, {Text: "db admin"}, {Text: "prod"}},
		{{Text: "ü"}, {Text: "日本"}},
	}
	for _, labels := range cases {
		got := ParseLabels(LabelsString(labels))
		if diff := cmp.Diff(labels, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLabels_RoundTripLimitations(t *testing.T) {
	// Separator inside a label splits it; blank labels vanish.
	got := ParseLabels(LabelsString([]Label{{Text: "a;b"}, {Text: "  "}}))
	want := []Label{{Text: "a"}, {Text: "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
