package compat

import (
	"fmt"
	"strings"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/internal/ports"
)

// Проверка, что Checker удовлетворяет интерфейсу CompatibilityChecker.
var _ ports.CompatibilityChecker = (*Checker)(nil)

const (
	summaryEmpty      = "No items in quote"
	summaryCompatible = "All components are compatible"
)

// component - канонический вид комплектующего.
type component int

const (
	componentCPU component = iota
	componentMotherboard
	componentMemory
	componentCase
	componentPSU
	componentCooler
)

// categoryAliases - допустимые названия категорий (нижний регистр) в порядке приоритета.
var categoryAliases = map[component][]string{
	componentCPU:         {"cpu", "processor"},
	componentMotherboard: {"motherboard", "mainboard"},
	componentMemory:      {"memory", "ram"},
	componentCase:        {"case", "chassis"},
	componentPSU:         {"power supply", "psu"},
	componentCooler:      {"cpu cooler", "cooler"},
}

// part - товар сметы вместе с индексом его характеристик.
type part struct {
	product *domain.Product
	specs   specIndex
}

func (p *part) ref(key, value string) *domain.ComponentRef {
	return &domain.ComponentRef{Name: p.product.Name, Spec: key, Value: value}
}

// build - подготовленные данные одной проверки.
type build struct {
	items      []domain.QuoteItem
	byCategory map[string][]*part
}

func newBuild(items []domain.QuoteItem) *build {
	b := &build{
		items:      items,
		byCategory: make(map[string][]*part),
	}
	for i := range items {
		product := &items[i].Product
		key := strings.ToLower(product.Category.Name)
		b.byCategory[key] = append(b.byCategory[key], &part{
			product: product,
			specs:   newSpecIndex(product.Specs),
		})
	}
	return b
}

// all - товары первой непустой категории из списка псевдонимов.
func (b *build) all(c component) []*part {
	for _, alias := range categoryAliases[c] {
		if parts := b.byCategory[alias]; len(parts) > 0 {
			return parts
		}
	}
	return nil
}

// first - первый товар категории; остальные дубликаты игнорируются.
func (b *build) first(c component) *part {
	if parts := b.all(c); len(parts) > 0 {
		return parts[0]
	}
	return nil
}

// accumulator - два накопителя: ошибки и предупреждения.
type accumulator struct {
	issues   []domain.Problem
	warnings []domain.Problem
}

func (a *accumulator) issue(p domain.Problem) {
	p.Severity = domain.SeverityError
	a.issues = append(a.issues, p)
}

func (a *accumulator) warn(p domain.Problem) {
	p.Severity = domain.SeverityWarning
	a.warnings = append(a.warnings, p)
}

// report - итоговый отчёт. В issues попадают только ошибки; предупреждения из
// накопителя issues (сейчас таких правил нет) переносятся в warnings.
func (a *accumulator) report() domain.Report {
	errs := filterBySeverity(a.issues, domain.SeverityError)
	warnings := make([]domain.Problem, 0, len(a.warnings))
	warnings = append(warnings, a.warnings...)
	warnings = append(warnings, filterBySeverity(a.issues, domain.SeverityWarning)...)

	summary := summaryCompatible
	if len(errs) > 0 {
		summary = fmt.Sprintf("%d compatibility issue(s) found", len(errs))
	}
	return domain.Report{
		Compatible: len(errs) == 0,
		Issues:     errs,
		Warnings:   warnings,
		Summary:    summary,
	}
}

func filterBySeverity(list []domain.Problem, severity string) []domain.Problem {
	out := make([]domain.Problem, 0, len(list))
	for _, p := range list {
		if p.Severity == severity {
			out = append(out, p)
		}
	}
	return out
}

// rule - одно правило проверки; правила независимы и выполняются все.
type rule func(b *build, acc *accumulator)

var rules = []rule{
	checkSocket,
	checkMemoryType,
	checkFormFactor,
	checkPowerBudget,
	checkCoolerSocket,
}

// Checker - проверка совместимости комплектующих сметы.
// Не хранит состояния: один и тот же вход всегда даёт один и тот же отчёт.
type Checker struct{}

// NewChecker - конструктор Checker.
func NewChecker() *Checker { return &Checker{} }

// Check - проверяет позиции сметы. Никогда не возвращает ошибку:
// отсутствующие или некорректные характеристики дают предупреждение либо пропускаются.
func (c *Checker) Check(items []domain.QuoteItem) domain.Report {
	if len(items) == 0 {
		return domain.Report{
			Compatible: true,
			Issues:     []domain.Problem{},
			Warnings:   []domain.Problem{},
			Summary:    summaryEmpty,
		}
	}

	b := newBuild(items)
	acc := &accumulator{}
	for _, r := range rules {
		r(b, acc)
	}
	return acc.report()
}
