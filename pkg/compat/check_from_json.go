package compat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/internal/ports"
)

// ErrInvalidQuote - документ сметы не разобран.
var ErrInvalidQuote = errors.New("invalid quote document")

// DecodeQuote - строгий разбор сметы: неизвестные поля и данные после объекта запрещены.
func DecodeQuote(raw []byte) (*domain.Quote, error) {
	var quote domain.Quote
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&quote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuote, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidQuote)
	}
	for i := range quote.Items {
		if quote.Items[i].Quantity < 0 {
			return nil, fmt.Errorf("%w: item %d has negative quantity", ErrInvalidQuote, i)
		}
	}
	return &quote, nil
}

// CheckQuoteFromJSON - разбор сметы и проверка совместимости её позиций.
func CheckQuoteFromJSON(checker ports.CompatibilityChecker, raw []byte) (*domain.Report, error) {
	quote, err := DecodeQuote(raw)
	if err != nil {
		return nil, err
	}
	report := checker.Check(quote.Items)
	report.QuoteID = quote.ID
	return &report, nil
}
