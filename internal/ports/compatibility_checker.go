package ports

import "github.com/Gunvolt24/pcquote/internal/domain"

// CompatibilityChecker - чистая проверка совместимости позиций сметы.
type CompatibilityChecker interface {
	Check(items []domain.QuoteItem) domain.Report
}
