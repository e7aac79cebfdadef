package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/pricecache/internal/ports"
)

// InputFormat — формат файла наблюдений.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Resolve — конкретный формат для пути: auto определяется по расширению,
// всё кроме .jsonl считается одиночным JSON.
func (f InputFormat) Resolve(path string) InputFormat {
	if f != FormatAuto && f != "" {
		return f
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверяет файл с одним наблюдением (JSON) или потоком (JSONL)
// и пишет валидные наблюдения в w. Для одиночного JSON невалидная запись — ошибка.
func ValidateFile(ctx context.Context, validator ports.ObservationValidator, path string, format InputFormat, w io.Writer) (Summary, error) {
	format = format.Resolve(path)
	if format != FormatJSON && format != FormatJSONL {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSONL {
		return ValidateStream(ctx, validator, file, w)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return Summary{}, fmt.Errorf("read file: %w", err)
	}
	obs, err := ObservationFromJSON(ctx, validator, raw)
	if err != nil {
		return Summary{Invalid: 1}, err
	}
	if err := writeCanonical(w, obs); err != nil {
		return Summary{}, err
	}
	return Summary{Valid: 1}, nil
}
