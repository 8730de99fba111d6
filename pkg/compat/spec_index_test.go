package compat

import (
	"reflect"
	"testing"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

func TestSpecIndex_Lookup(t *testing.T) {
	idx := newSpecIndex([]domain.Spec{
		{Key: "Socket", Value: ""},
		{Key: "CPU Socket", Value: "AM5"},
		{Key: "Wattage", Value: "650W"},
	})

	key, val, ok := idx.lookup("socket", "cpu socket")
	if !ok || key != "cpu socket" || val != "AM5" {
		t.Fatalf("lookup fallback: got %q %q %v", key, val, ok)
	}

	key, val, ok = idx.lookup("form factor", "supported form factor")
	if ok || key != "form factor" || val != "" {
		t.Fatalf("lookup missing: got %q %q %v", key, val, ok)
	}

	if _, _, ok = idx.lookup(); ok {
		t.Fatalf("lookup without keys must fail")
	}
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"ATX, Micro-ATX", []string{"atx", "micro-atx"}},
		{"AM4/AM5", []string{"am4", "am5"}},
		{"E-ATX / ATX,mATX", []string{"e-atx", "atx", "matx"}},
		{"ATX,", []string{"atx", ""}},
		{"LGA1700", []string{"lga1700"}},
	}
	for _, tt := range tests {
		if got := splitTokens(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitTokens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"750", 750},
		{"750W", 750},
		{" 650 W", 650},
		{"+500", 500},
		{"1000.5", 1000},
		{"W750", 0},
		{"", 0},
		{"-", 0},
		{"about 300", 0},
	}
	for _, tt := range tests {
		if got := parseLeadingInt(tt.in); got != tt.want {
			t.Fatalf("parseLeadingInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestContainsAsWord(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{"atx mid tower", "atx", true},
		{"atx", "atx", true},
		{"micro-atx", "atx", false},
		{"microatx", "atx", false},
		{"micro-atx, atx", "atx", true},
		{"(atx)", "atx", true},
		{"anything", "", true},
		{"itx", "atx", false},
	}
	for _, tt := range tests {
		if got := containsAsWord(tt.haystack, tt.needle); got != tt.want {
			t.Fatalf("containsAsWord(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}
