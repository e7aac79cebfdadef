package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
)

// ObservationFromJSON — строгий разбор и валидация наблюдения из JSON.
// Любая ошибка оборачивает ErrInvalidObservation.
func ObservationFromJSON(ctx context.Context, validator ports.ObservationValidator, raw []byte) (*domain.Observation, error) {
	var obs domain.Observation
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obs); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %w", ErrInvalidObservation, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidObservation)
	}
	if err := validator.Validate(ctx, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}
