package compat

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/pcquote/internal/ports"
)

// CheckJSONLStream - читает JSONL (одна смета на строку), пишет отчёт на каждую разобранную смету.
// Пустые строки пропускаются, неразобранные считаются в Invalid и не прерывают поток.
func CheckJSONLStream(ctx context.Context, checker ports.CompatibilityChecker, ir io.Reader, ow io.Writer) (FileResult, error) {
	var res FileResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		report, err := CheckQuoteFromJSON(checker, line)
		if err != nil {
			res.Invalid++
			continue
		}
		if err := writeLine(ow, report); err != nil {
			return res, err
		}
		res.count(report.Compatible)
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
