package compat_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/pkg/compat"
)

// item - позиция сметы; specs задаются парами ключ/значение.
func item(category, name string, specs ...string) domain.QuoteItem {
	return itemQty(1, category, name, specs...)
}

func itemQty(qty int, category, name string, specs ...string) domain.QuoteItem {
	p := domain.Product{Name: name, Category: domain.Category{Name: category}}
	for i := 0; i+1 < len(specs); i += 2 {
		p.Specs = append(p.Specs, domain.Spec{Key: specs[i], Value: specs[i+1]})
	}
	return domain.QuoteItem{Quantity: qty, Product: p}
}

func countType(list []domain.Problem, typ string) int {
	n := 0
	for _, p := range list {
		if p.Type == typ {
			n++
		}
	}
	return n
}

func mustCompatible(t *testing.T, r domain.Report) {
	t.Helper()
	if !r.Compatible || len(r.Issues) != 0 {
		t.Fatalf("expected compatible report, got %+v", r)
	}
	if r.Summary != "All components are compatible" {
		t.Fatalf("unexpected summary: %q", r.Summary)
	}
}

func TestCheck_EmptyItems(t *testing.T) {
	r := compat.NewChecker().Check(nil)

	if !r.Compatible || r.Summary != "No items in quote" {
		t.Fatalf("unexpected report: %+v", r)
	}
	if r.Issues == nil || r.Warnings == nil || len(r.Issues) != 0 || len(r.Warnings) != 0 {
		t.Fatalf("issues/warnings must be empty non-nil slices: %+v", r)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"issues":[]`, `"warnings":[]`, `"compatible":true`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("json %s must contain %s", raw, want)
		}
	}
	if strings.Contains(string(raw), "component1") {
		t.Fatalf("empty report must not contain component fields: %s", raw)
	}
}

func TestCheck_Socket(t *testing.T) {
	t.Parallel()

	psu := item("Power Supply", "PSU 750", "Wattage", "750W")

	tests := []struct {
		name         string
		items        []domain.QuoteItem
		wantIssues   int
		wantMissing  int
		wantCompat   bool
		wantMessages []string
	}{
		{
			name: "same socket different case",
			items: []domain.QuoteItem{
				item("CPU", "i5-13600K", "Socket", "LGA1700"),
				item("Motherboard", "Z790", "socket", "lga1700"),
				psu,
			},
			wantCompat: true,
		},
		{
			name: "mismatch",
			items: []domain.QuoteItem{
				item("CPU", "Ryzen 7 7700X", "Socket", "AM5"),
				item("Motherboard", "Z790", "Socket", "LGA1700"),
				psu,
			},
			wantIssues: 1,
		},
		{
			name: "fallback key cpu socket",
			items: []domain.QuoteItem{
				item("Processor", "Ryzen 5 5600", "CPU Socket", "AM4"),
				item("Mainboard", "B550", "Socket", "AM4"),
				psu,
			},
			wantCompat: true,
		},
		{
			name: "empty socket value falls through to next key",
			items: []domain.QuoteItem{
				item("CPU", "Ryzen 5 5600", "Socket", "", "CPU Socket", "AM4"),
				item("Motherboard", "B550", "Socket", "AM4"),
				psu,
			},
			wantCompat: true,
		},
		{
			name: "board socket missing",
			items: []domain.QuoteItem{
				item("CPU", "Ryzen 5 5600", "Socket", "AM4"),
				item("Motherboard", "B550", "Chipset", "B550"),
				psu,
			},
			wantMissing:  1,
			wantCompat:   true,
			wantMessages: []string{"Socket information missing"},
		},
		{
			name: "no motherboard - rule skipped",
			items: []domain.QuoteItem{
				item("CPU", "Ryzen 5 5600", "Socket", "AM4"),
				psu,
			},
			wantCompat: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := compat.NewChecker().Check(tt.items)

			if got := countType(r.Issues, domain.ProblemIncompatible); got != tt.wantIssues {
				t.Fatalf("issues: want %d, got %d (%+v)", tt.wantIssues, got, r.Issues)
			}
			if got := countType(r.Warnings, domain.ProblemMissingInfo); got != tt.wantMissing {
				t.Fatalf("missing_info warnings: want %d, got %d (%+v)", tt.wantMissing, got, r.Warnings)
			}
			if r.Compatible != tt.wantCompat {
				t.Fatalf("compatible: want %v, got %v", tt.wantCompat, r.Compatible)
			}
			for i, msg := range tt.wantMessages {
				if r.Warnings[i].Message != msg {
					t.Fatalf("warning[%d]: want %q, got %q", i, msg, r.Warnings[i].Message)
				}
			}
		})
	}
}

func TestCheck_SocketMismatch_ReferencesBothComponents(t *testing.T) {
	r := compat.NewChecker().Check([]domain.QuoteItem{
		item("CPU", "Ryzen 7 7700X", "Socket", "AM5"),
		item("Motherboard", "ROG Z790", "Socket", "LGA1700"),
	})

	if r.Compatible {
		t.Fatalf("expected incompatible")
	}
	if len(r.Issues) != 1 {
		t.Fatalf("want exactly 1 issue, got %+v", r.Issues)
	}
	is := r.Issues[0]
	if is.Type != domain.ProblemIncompatible || is.Severity != domain.SeverityError {
		t.Fatalf("unexpected issue: %+v", is)
	}
	if is.Component1 == nil || is.Component1.Name != "Ryzen 7 7700X" || is.Component1.Value != "AM5" {
		t.Fatalf("component1 wrong: %+v", is.Component1)
	}
	if is.Component2 == nil || is.Component2.Name != "ROG Z790" || is.Component2.Value != "LGA1700" {
		t.Fatalf("component2 wrong: %+v", is.Component2)
	}
	if r.Summary != "1 compatibility issue(s) found" {
		t.Fatalf("unexpected summary: %q", r.Summary)
	}
}

func TestCheck_MemoryType(t *testing.T) {
	t.Parallel()

	board := item("Motherboard", "B650", "Socket", "AM5", "Memory Type", "DDR4")

	tests := []struct {
		name       string
		items      []domain.QuoteItem
		wantIssues int
	}{
		{
			name:       "single mismatch",
			items:      []domain.QuoteItem{item("Memory", "DDR5 16GB", "Type", "DDR5"), board},
			wantIssues: 1,
		},
		{
			name:       "match ignoring case",
			items:      []domain.QuoteItem{item("RAM", "DDR4 16GB", "type", "ddr4"), board},
			wantIssues: 0,
		},
		{
			name: "every mismatched stick is reported",
			items: []domain.QuoteItem{
				item("Memory", "Stick A", "Type", "DDR5"),
				item("Memory", "Stick B", "Type", "DDR4"),
				item("Memory", "Stick C", "DDR", "DDR5"),
				board,
			},
			wantIssues: 2,
		},
		{
			name:       "module type missing - skipped silently",
			items:      []domain.QuoteItem{item("Memory", "Unknown stick", "Capacity", "16GB"), board},
			wantIssues: 0,
		},
		{
			name: "board type missing - skipped silently",
			items: []domain.QuoteItem{
				item("Memory", "DDR5 16GB", "Type", "DDR5"),
				item("Motherboard", "B650", "Socket", "AM5"),
			},
			wantIssues: 0,
		},
		{
			name: "board fallback key ddr",
			items: []domain.QuoteItem{
				item("Memory", "DDR5 16GB", "Memory Type", "DDR5"),
				item("Motherboard", "B650", "DDR", "DDR5"),
			},
			wantIssues: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := compat.NewChecker().Check(tt.items)
			if got := len(r.Issues); got != tt.wantIssues {
				t.Fatalf("issues: want %d, got %d (%+v)", tt.wantIssues, got, r.Issues)
			}
			if r.Compatible != (tt.wantIssues == 0) {
				t.Fatalf("compatible must follow issues count: %+v", r)
			}
			if countType(r.Warnings, domain.ProblemMissingInfo) != 0 {
				t.Fatalf("memory rule must not produce missing_info warnings: %+v", r.Warnings)
			}
		})
	}
}

func TestCheck_MemoryMismatch_NamesStick(t *testing.T) {
	r := compat.NewChecker().Check([]domain.QuoteItem{
		item("Memory", "Stick A", "Type", "DDR5"),
		item("Memory", "Stick B", "Type", "DDR5"),
		item("Motherboard", "B550", "Memory Type", "DDR4"),
	})

	if len(r.Issues) != 2 {
		t.Fatalf("want 2 issues, got %+v", r.Issues)
	}
	if r.Issues[0].Component1.Name != "Stick A" || r.Issues[1].Component1.Name != "Stick B" {
		t.Fatalf("issues must follow item order: %+v", r.Issues)
	}
	if r.Issues[0].Component2.Name != "B550" || r.Issues[0].Component2.Value != "DDR4" {
		t.Fatalf("component2 wrong: %+v", r.Issues[0].Component2)
	}
	if r.Summary != "2 compatibility issue(s) found" {
		t.Fatalf("unexpected summary: %q", r.Summary)
	}
}

func TestCheck_FormFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		caseSpecs []string
		boardFF   string
		wantWarn  bool
	}{
		{"listed among tokens", []string{"Form Factor", "ATX, Micro-ATX"}, "ATX", false},
		{"slash separated", []string{"Supported Form Factor", "E-ATX/ATX/mATX"}, "ATX", false},
		{"smaller case", []string{"Form Factor", "Micro-ATX"}, "ATX", true},
		{"smaller board fits", []string{"Form Factor", "ATX"}, "Micro-ATX", false},
		{"descriptive token", []string{"Form Factor", "ATX Mid Tower"}, "ATX", false},
		{"itx board in atx case", []string{"Form Factor", "ATX"}, "Mini-ITX", true},
		{"case value missing", []string{"Color", "Black"}, "ATX", false},
		{"board value missing", []string{"Form Factor", "Micro-ATX"}, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			boardSpecs := []string{"Socket", "AM5"}
			if tt.boardFF != "" {
				boardSpecs = append(boardSpecs, "Form Factor", tt.boardFF)
			}
			r := compat.NewChecker().Check([]domain.QuoteItem{
				item("Case", "Tower", tt.caseSpecs...),
				item("Motherboard", "Board", boardSpecs...),
			})

			got := countType(r.Warnings, domain.ProblemFormFactor)
			if tt.wantWarn && got != 1 {
				t.Fatalf("want 1 form_factor warning, got %d (%+v)", got, r.Warnings)
			}
			if !tt.wantWarn && got != 0 {
				t.Fatalf("want no form_factor warning, got %+v", r.Warnings)
			}
			if len(r.Issues) != 0 || !r.Compatible {
				t.Fatalf("form factor must not affect compatible: %+v", r)
			}
		})
	}
}

func TestCheck_PowerBudget(t *testing.T) {
	t.Parallel()

	cpu := item("CPU", "CPU", "Socket", "AM5")
	gpu := item("Graphics Card", "RTX")
	board := item("Motherboard", "Board", "Socket", "AM5")

	tests := []struct {
		name            string
		psu             *domain.QuoteItem
		wantInsufficient bool
		wantMissing     bool
	}{
		{name: "no psu", psu: nil, wantMissing: true},
		{name: "enough power", psu: ptr(item("PSU", "750", "Wattage", "750W"))},
		{name: "too weak", psu: ptr(item("Power Supply", "300", "Wattage", "300"))},
		{name: "fallback key power", psu: ptr(item("PSU", "300", "Power", "300 W"))},
		{name: "unparseable wattage is ignored", psu: ptr(item("PSU", "mystery", "Wattage", "about 300"))},
		{name: "no wattage at all", psu: ptr(item("PSU", "nameless"))},
	}
	tests[2].wantInsufficient = true
	tests[3].wantInsufficient = true

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := []domain.QuoteItem{cpu, gpu, board}
			if tt.psu != nil {
				items = append(items, *tt.psu)
			}
			r := compat.NewChecker().Check(items)

			if got := countType(r.Warnings, domain.ProblemMissingComponent); (got == 1) != tt.wantMissing {
				t.Fatalf("missing_component: want %v, got %d (%+v)", tt.wantMissing, got, r.Warnings)
			}
			if got := countType(r.Warnings, domain.ProblemPowerInsufficient); (got == 1) != tt.wantInsufficient {
				t.Fatalf("power_insufficient: want %v, got %d (%+v)", tt.wantInsufficient, got, r.Warnings)
			}
			if !r.Compatible {
				t.Fatalf("power warnings must not affect compatible: %+v", r)
			}
		})
	}
}

func TestCheck_PowerBudget_Numbers(t *testing.T) {
	r := compat.NewChecker().Check([]domain.QuoteItem{
		item("CPU", "CPU", "Socket", "AM5"),
		item("GPU", "GPU"),
		item("Motherboard", "Board", "Socket", "AM5"),
		itemQty(2, "Memory", "Stick"),
		item("SSD", "NVMe"),
		item("PSU", "Weak PSU", "Wattage", "400W"),
	})

	// 150 + 250 + 50 + 2*10 + 10 + 20 (psu) = 500; 500 * 1.2 = 600
	if len(r.Warnings) != 1 {
		t.Fatalf("want exactly one warning, got %+v", r.Warnings)
	}
	w := r.Warnings[0]
	if w.Type != domain.ProblemPowerInsufficient || w.Severity != domain.SeverityWarning {
		t.Fatalf("unexpected warning: %+v", w)
	}
	if w.EstimatedWattage != 500 || w.RecommendedWattage != 600 || w.PSUWattage != 400 {
		t.Fatalf("numbers wrong: est=%d rec=%d psu=%d", w.EstimatedWattage, w.RecommendedWattage, w.PSUWattage)
	}
	if w.Component1 == nil || w.Component1.Name != "Weak PSU" {
		t.Fatalf("component1 must reference the psu: %+v", w.Component1)
	}
}

func TestCheck_CoolerSocket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cooler     []string
		cpuSocket  string
		wantIssues int
	}{
		{"supported in list", []string{"Socket", "AM4/AM5"}, "AM5", 0},
		{"supported comma list", []string{"Supported Socket", "LGA1700, LGA1200, AM5"}, "am5", 0},
		{"substring match", []string{"Socket", "LGA1700"}, "LGA 1700", 1},
		{"token contains socket", []string{"Socket", "Intel LGA1700"}, "LGA1700", 0},
		{"not supported", []string{"Socket", "LGA1700, LGA1200"}, "AM5", 1},
		{"cooler socket missing", []string{"Height", "155mm"}, "AM5", 0},
		{"cpu socket missing", []string{"Socket", "LGA1700"}, "", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cpuSpecs []string
			if tt.cpuSocket != "" {
				cpuSpecs = []string{"Socket", tt.cpuSocket}
			}
			r := compat.NewChecker().Check([]domain.QuoteItem{
				item("CPU", "CPU", cpuSpecs...),
				item("CPU Cooler", "Cooler", tt.cooler...),
				item("PSU", "PSU", "Wattage", "850"),
			})
			if got := len(r.Issues); got != tt.wantIssues {
				t.Fatalf("issues: want %d, got %d (%+v)", tt.wantIssues, got, r.Issues)
			}
			if tt.wantIssues > 0 && r.Issues[0].Component1.Name != "Cooler" {
				t.Fatalf("component1 must be the cooler: %+v", r.Issues[0])
			}
		})
	}
}

func TestCheck_CategoryAliases(t *testing.T) {
	t.Run("first alias with entries wins", func(t *testing.T) {
		r := compat.NewChecker().Check([]domain.QuoteItem{
			item("Processor", "Old CPU", "Socket", "AM4"),
			item("cpu", "New CPU", "Socket", "AM5"),
			item("Motherboard", "Board", "Socket", "AM5"),
		})
		if len(r.Issues) != 0 {
			t.Fatalf("cpu bucket must take priority over processor: %+v", r.Issues)
		}
	})

	t.Run("duplicates after the first are ignored", func(t *testing.T) {
		r := compat.NewChecker().Check([]domain.QuoteItem{
			item("CPU", "First", "Socket", "AM5"),
			item("CPU", "Second", "Socket", "LGA1700"),
			item("Motherboard", "Board", "Socket", "AM5"),
		})
		if len(r.Issues) != 0 {
			t.Fatalf("only the first cpu is compared: %+v", r.Issues)
		}
	})

	t.Run("unrecognized category is invisible", func(t *testing.T) {
		r := compat.NewChecker().Check([]domain.QuoteItem{
			item("Central Processing Unit", "CPU", "Socket", "AM5"),
			item("Motherboard", "Board", "Socket", "LGA1700"),
			item("PSU", "PSU", "Wattage", "650"),
		})
		mustCompatible(t, r)
		if len(r.Warnings) != 0 {
			t.Fatalf("no warnings expected: %+v", r.Warnings)
		}
	})
}

func TestCheck_SpecKeyCollision_LastWins(t *testing.T) {
	r := compat.NewChecker().Check([]domain.QuoteItem{
		item("CPU", "CPU", "Socket", "AM4", "SOCKET", "AM5"),
		item("Motherboard", "Board", "socket", "AM5"),
	})
	if len(r.Issues) != 0 {
		t.Fatalf("later spec with colliding key must win: %+v", r.Issues)
	}
}

func TestCheck_Scenarios(t *testing.T) {
	t.Run("1: matching sockets with big psu", func(t *testing.T) {
		r := compat.NewChecker().Check([]domain.QuoteItem{
			item("CPU", "i5", "Socket", "LGA1700"),
			item("Motherboard", "Z790", "Socket", "LGA1700"),
			item("Power Supply", "PSU", "Wattage", "750"),
		})
		mustCompatible(t, r)
		if len(r.Warnings) != 0 {
			t.Fatalf("no warnings expected: %+v", r.Warnings)
		}
	})

	t.Run("2: socket mismatch", func(t *testing.T) {
		r := compat.NewChecker().Check([]domain.QuoteItem{
			item("CPU", "Ryzen", "Socket", "AM4"),
			item("Motherboard", "Z790", "Socket", "LGA1700"),
		})
		if r.Compatible || len(r.Issues) != 1 || r.Summary != "1 compatibility issue(s) found" {
			t.Fatalf("unexpected report: %+v", r)
		}
	})

	t.Run("4: cpu and gpu without psu", func(t *testing.T) {
		r := compat.NewChecker().Check([]domain.QuoteItem{
			item("CPU", "Ryzen", "Socket", "AM5"),
			item("GPU", "RTX"),
		})
		mustCompatible(t, r)
		if countType(r.Warnings, domain.ProblemMissingComponent) != 1 {
			t.Fatalf("missing_component warning expected: %+v", r.Warnings)
		}
	})
}

func TestCheck_Idempotent(t *testing.T) {
	items := []domain.QuoteItem{
		item("CPU", "Ryzen", "Socket", "AM5"),
		item("Motherboard", "Z790", "Socket", "LGA1700", "Memory Type", "DDR5", "Form Factor", "ATX"),
		item("Memory", "Stick", "Type", "DDR4"),
		item("Case", "Small", "Form Factor", "Mini-ITX"),
		item("Cooler", "Cooler", "Socket", "LGA1700"),
		item("PSU", "PSU", "Wattage", "200W"),
	}

	checker := compat.NewChecker()
	first, err := json.Marshal(checker.Check(items))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(checker.Check(items))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("reports differ:\n%s\n%s", first, second)
	}
}

func TestCheck_AddingSSD_KeepsCompatible(t *testing.T) {
	base := []domain.QuoteItem{
		item("CPU", "i5", "Socket", "LGA1700"),
		item("Motherboard", "Z790", "Socket", "LGA1700", "Memory Type", "DDR5"),
		item("Memory", "Stick", "Type", "DDR5"),
		item("PSU", "PSU", "Wattage", "650"),
	}
	checker := compat.NewChecker()
	mustCompatible(t, checker.Check(base))

	withSSD := append(append([]domain.QuoteItem{}, base...), item("SSD", "NVMe 1TB", "Interface", "PCIe 4.0"))
	mustCompatible(t, checker.Check(withSSD))
}

func TestCheck_CompatibleInvariant(t *testing.T) {
	r := compat.NewChecker().Check([]domain.QuoteItem{
		item("CPU", "Ryzen", "Socket", "AM5"),
		item("Motherboard", "Board", "Socket", "LGA1700", "Memory", "DDR4"),
		item("RAM", "Stick", "Type", "DDR5"),
		item("Cooler", "Cooler", "Socket", "LGA1700"),
	})
	if len(r.Issues) != 3 {
		t.Fatalf("want 3 issues (socket, memory, cooler), got %+v", r.Issues)
	}
	if r.Compatible {
		t.Fatalf("compatible must be false when issues present")
	}
	for _, is := range r.Issues {
		if is.Severity != domain.SeverityError {
			t.Fatalf("issues must have error severity: %+v", is)
		}
	}
	for _, w := range r.Warnings {
		if w.Severity != domain.SeverityWarning {
			t.Fatalf("warnings must have warning severity: %+v", w)
		}
	}
}

func TestEstimateDraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []domain.QuoteItem
		want  int
	}{
		{"cpu", []domain.QuoteItem{item("CPU", "x")}, 150},
		{"cpu cooler counts as cpu", []domain.QuoteItem{item("CPU Cooler", "x")}, 150},
		{"graphics", []domain.QuoteItem{item("Graphics Card", "x")}, 250},
		{"mainboard", []domain.QuoteItem{item("Mainboard", "x")}, 50},
		{"memory scaled by quantity", []domain.QuoteItem{itemQty(4, "RAM", "x")}, 40},
		{"storage flat", []domain.QuoteItem{itemQty(3, "HDD", "x")}, 10},
		{"other flat", []domain.QuoteItem{itemQty(2, "Fan", "x")}, 20},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := compat.EstimateDraw(tt.items); got != tt.want {
				t.Fatalf("EstimateDraw: want %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRecommendedWattage(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ in, want int }{{0, 0}, {1, 2}, {5, 6}, {200, 240}, {220, 264}, {501, 602}} {
		if got := compat.RecommendedWattage(tc.in); got != tc.want {
			t.Fatalf("RecommendedWattage(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func ptr(i domain.QuoteItem) *domain.QuoteItem { return &i }
