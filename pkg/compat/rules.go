package compat

import (
	"fmt"
	"strings"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

// Ключи характеристик в порядке приоритета.
var (
	keysSocket          = []string{"socket", "cpu socket"}
	keysBoardMemory     = []string{"memory type", "memory", "ddr"}
	keysModuleMemory    = []string{"type", "memory type", "ddr"}
	keysCaseFormFactor  = []string{"form factor", "supported form factor"}
	keysBoardFormFactor = []string{"form factor"}
	keysPSUWattage      = []string{"wattage", "power", "w"}
	keysCoolerSocket    = []string{"socket", "supported socket"}
)

// Оценка энергопотребления (Вт) и запас блока питания.
const (
	drawCPU         = 150
	drawGPU         = 250
	drawMotherboard = 50
	drawMemoryStick = 10
	drawStorage     = 10
	drawOther       = 20

	// psuHeadroomPercent - рекомендуемая мощность = ceil(оценка * 1.2).
	psuHeadroomPercent = 120
)

// checkSocket - сокет процессора и материнской платы.
func checkSocket(b *build, acc *accumulator) {
	cpu := b.first(componentCPU)
	board := b.first(componentMotherboard)
	if cpu == nil || board == nil {
		return
	}

	cpuKey, cpuSocket, cpuOK := cpu.specs.lookup(keysSocket...)
	boardKey, boardSocket, boardOK := board.specs.lookup(keysSocket...)

	if !cpuOK || !boardOK {
		acc.warn(domain.Problem{
			Type:       domain.ProblemMissingInfo,
			Component1: cpu.ref(cpuKey, cpuSocket),
			Component2: board.ref(boardKey, boardSocket),
			Message:    "Socket information missing",
		})
		return
	}

	if strings.ToLower(cpuSocket) != strings.ToLower(boardSocket) {
		acc.issue(domain.Problem{
			Type:       domain.ProblemIncompatible,
			Component1: cpu.ref(cpuKey, cpuSocket),
			Component2: board.ref(boardKey, boardSocket),
			Message: fmt.Sprintf("CPU socket (%s) is not compatible with motherboard socket (%s)",
				cpuSocket, boardSocket),
		})
	}
}

// checkMemoryType - тип памяти (DDR) каждого модуля против материнской платы.
// При отсутствии данных с любой стороны правило молча пропускается.
func checkMemoryType(b *build, acc *accumulator) {
	board := b.first(componentMotherboard)
	if board == nil {
		return
	}
	boardKey, boardType, ok := board.specs.lookup(keysBoardMemory...)
	if !ok {
		return
	}

	for _, module := range b.all(componentMemory) {
		moduleKey, moduleType, ok := module.specs.lookup(keysModuleMemory...)
		if !ok {
			continue
		}
		if strings.ToLower(moduleType) != strings.ToLower(boardType) {
			acc.issue(domain.Problem{
				Type:       domain.ProblemIncompatible,
				Component1: module.ref(moduleKey, moduleType),
				Component2: board.ref(boardKey, boardType),
				Message: fmt.Sprintf("Memory type (%s) is not supported by motherboard (%s)",
					moduleType, boardType),
			})
		}
	}
}

// checkFormFactor - форм-фактор платы против списка, поддерживаемого корпусом.
// Несовпадение - только предупреждение.
func checkFormFactor(b *build, acc *accumulator) {
	chassis := b.first(componentCase)
	board := b.first(componentMotherboard)
	if chassis == nil || board == nil {
		return
	}

	caseKey, caseValue, caseOK := chassis.specs.lookup(keysCaseFormFactor...)
	boardKey, boardValue, boardOK := board.specs.lookup(keysBoardFormFactor...)
	if !caseOK || !boardOK {
		return
	}

	boardFF := strings.ToLower(boardValue)
	for _, token := range splitTokens(caseValue) {
		if strings.Contains(boardFF, token) || containsAsWord(token, boardFF) {
			return
		}
	}

	acc.warn(domain.Problem{
		Type:       domain.ProblemFormFactor,
		Component1: chassis.ref(caseKey, caseValue),
		Component2: board.ref(boardKey, boardValue),
		Message: fmt.Sprintf("Motherboard form factor (%s) may not fit the case (supports: %s)",
			boardValue, caseValue),
	})
}

// checkPowerBudget - мощность блока питания против грубой оценки потребления.
func checkPowerBudget(b *build, acc *accumulator) {
	psu := b.first(componentPSU)
	if psu == nil {
		acc.warn(domain.Problem{
			Type:      domain.ProblemMissingComponent,
			Component: "power supply",
			Message:   "No power supply in quote: unable to verify power budget",
		})
		return
	}

	psuKey, psuValue, _ := psu.specs.lookup(keysPSUWattage...)
	wattage := parseLeadingInt(psuValue)

	estimated := EstimateDraw(b.items)
	recommended := RecommendedWattage(estimated)

	if wattage > 0 && wattage < recommended {
		acc.warn(domain.Problem{
			Type:               domain.ProblemPowerInsufficient,
			Component1:         psu.ref(psuKey, psuValue),
			EstimatedWattage:   estimated,
			RecommendedWattage: recommended,
			PSUWattage:         wattage,
			Message: fmt.Sprintf("Power supply (%dW) is below the recommended %dW (estimated draw %dW)",
				wattage, recommended, estimated),
		})
	}
}

// checkCoolerSocket - поддержка сокета процессора кулером.
func checkCoolerSocket(b *build, acc *accumulator) {
	cooler := b.first(componentCooler)
	cpu := b.first(componentCPU)
	if cooler == nil || cpu == nil {
		return
	}

	coolerKey, coolerValue, coolerOK := cooler.specs.lookup(keysCoolerSocket...)
	cpuKey, cpuValue, cpuOK := cpu.specs.lookup(keysSocket...)
	if !coolerOK || !cpuOK {
		return
	}

	cpuSocket := strings.ToLower(cpuValue)
	for _, token := range splitTokens(coolerValue) {
		if strings.Contains(token, cpuSocket) || strings.Contains(cpuSocket, token) {
			return
		}
	}

	acc.issue(domain.Problem{
		Type:       domain.ProblemIncompatible,
		Component1: cooler.ref(coolerKey, coolerValue),
		Component2: cpu.ref(cpuKey, cpuValue),
		Message:    fmt.Sprintf("CPU cooler does not support CPU socket (%s)", cpuValue),
	})
}

// EstimateDraw - грубая оценка потребления сборки в ваттах.
// Категория сопоставляется по подстроке исходного названия (без учёта регистра),
// независимо от таблицы псевдонимов.
func EstimateDraw(items []domain.QuoteItem) int {
	total := 0
	for i := range items {
		category := strings.ToLower(items[i].Product.Category.Name)
		switch {
		case strings.Contains(category, "cpu"):
			total += drawCPU
		case strings.Contains(category, "gpu"), strings.Contains(category, "graphics"):
			total += drawGPU
		case strings.Contains(category, "motherboard"), strings.Contains(category, "mainboard"):
			total += drawMotherboard
		case strings.Contains(category, "memory"), strings.Contains(category, "ram"):
			total += drawMemoryStick * items[i].Quantity
		case strings.Contains(category, "ssd"), strings.Contains(category, "hdd"):
			total += drawStorage
		default:
			total += drawOther
		}
	}
	return total
}

// RecommendedWattage - ceil(estimated * 1.2) в целочисленной арифметике.
func RecommendedWattage(estimated int) int {
	return (estimated*psuHeadroomPercent + 99) / 100
}
