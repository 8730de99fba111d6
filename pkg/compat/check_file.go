package compat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/pcquote/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// FileResult - итог проверки файла.
type FileResult struct {
	Compatible   int
	Incompatible int
	Invalid      int
}

// Summary - "<n> compatible / <m> incompatible / <k> invalid".
func (r FileResult) Summary() string {
	return fmt.Sprintf("%d compatible / %d incompatible / %d invalid", r.Compatible, r.Incompatible, r.Invalid)
}

func (r *FileResult) count(compatible bool) {
	if compatible {
		r.Compatible++
		return
	}
	r.Incompatible++
}

// DetectFormat - формат по расширению файла; неизвестное расширение считается JSON.
func DetectFormat(path string) InputFormat {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// CheckFile - проверяет сметы из файла (JSON или JSONL) и пишет отчёты в writer, по одному на строку.
func CheckFile(ctx context.Context, checker ports.CompatibilityChecker, filePath string, format InputFormat, ow io.Writer) (string, error) {
	if format == FormatAuto {
		format = DetectFormat(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	res, err := CheckReader(ctx, checker, file, format, ow)
	return res.Summary(), err
}

// CheckReader - то же, что CheckFile, но для произвольного reader'а (например, stdin).
// Для FormatAuto reader читается как JSONL.
func CheckReader(ctx context.Context, checker ports.CompatibilityChecker, ir io.Reader, format InputFormat, ow io.Writer) (FileResult, error) {
	var res FileResult

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return res, fmt.Errorf("read input: %w", err)
		}
		report, err := CheckQuoteFromJSON(checker, raw)
		if err != nil {
			res.Invalid++
			return res, err
		}
		if err := writeLine(ow, report); err != nil {
			return res, err
		}
		res.count(report.Compatible)
		return res, nil

	case FormatJSONL, FormatAuto:
		return CheckJSONLStream(ctx, checker, ir, ow)

	default:
		return res, fmt.Errorf("unsupported format: %s", format)
	}
}

func writeLine(ow io.Writer, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	line = append(line, '\n')
	if _, err := ow.Write(line); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
