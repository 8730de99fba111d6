package domain

// Уровни серьёзности проблем совместимости.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Типы проблем совместимости.
const (
	ProblemIncompatible      = "incompatible"
	ProblemMissingInfo       = "missing_info"
	ProblemFormFactor        = "form_factor"
	ProblemPowerInsufficient = "power_insufficient"
	ProblemMissingComponent  = "missing_component"
)

// ComponentRef - ссылка на компонент в отчёте: имя товара, ключ характеристики и её значение.
type ComponentRef struct {
	Name  string `json:"name"`
	Spec  string `json:"spec"`
	Value string `json:"value"`
}

// Problem - найденная проблема (ошибка или предупреждение).
// Набор заполненных полей зависит от правила.
type Problem struct {
	Type       string        `json:"type"`
	Severity   string        `json:"severity"`
	Component1 *ComponentRef `json:"component1,omitempty"`
	Component2 *ComponentRef `json:"component2,omitempty"`
	Component  string        `json:"component,omitempty"`

	EstimatedWattage   int `json:"estimatedWattage,omitempty"`
	RecommendedWattage int `json:"recommendedWattage,omitempty"`
	PSUWattage         int `json:"psuWattage,omitempty"`

	Message string `json:"message"`
}

// Report - результат проверки совместимости.
// Инвариант: Compatible == (len(Issues) == 0); предупреждения на Compatible не влияют.
type Report struct {
	QuoteID    int64     `json:"quoteId"`
	Compatible bool      `json:"compatible"`
	Issues     []Problem `json:"issues"`
	Warnings   []Problem `json:"warnings"`
	Summary    string    `json:"summary"`
}
