package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/pricecache/internal/ports"
)

// maxLineSize — предел одной строки JSONL.
const maxLineSize = 10 << 20

// ValidateStream — построчно проверяет JSONL и пишет каждое валидное наблюдение
// в w каноническим JSON (одна строка). Невалидные и пустые строки пропускаются;
// ошибка возвращается только при сбое чтения или записи.
func ValidateStream(ctx context.Context, validator ports.ObservationValidator, r io.Reader, w io.Writer) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		obs, err := ObservationFromJSON(ctx, validator, line)
		if err != nil {
			sum.Invalid++
			sum.InvalidLines = append(sum.InvalidLines, lineNo)
			continue
		}
		if err := writeCanonical(w, obs); err != nil {
			return sum, err
		}
		sum.Valid++
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}

func writeCanonical(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
