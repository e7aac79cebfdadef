package validate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
)

// Проверка, что ObservationValidator удовлетворяет интерфейсу ObservationValidator.
var _ ports.ObservationValidator = (*ObservationValidator)(nil)

var (
	// ErrInvalidObservation — базовая (sentinel error) ошибка валидации наблюдения.
	ErrInvalidObservation = errors.New("observation validation failed")
	// ErrInvalidRequest — некорректный запрос агрегата.
	ErrInvalidRequest = errors.New("aggregate request validation failed")
)

const (
	// MaxKeyLen — максимальная длина ключа цены.
	MaxKeyLen = 256
	// MaxCandidates — максимум кандидатов в одном агрегате.
	MaxCandidates = 64
	// MaxClockSkew — насколько observedAt может опережать часы сервиса.
	MaxClockSkew = time.Minute
)

// минимально допустимое время наблюдения
var minObservedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// ObservationValidator — структура для валидации наблюдений цены.
type ObservationValidator struct {
	clock ports.Clock
}

// Option — настройка ObservationValidator.
type Option func(*ObservationValidator)

// WithClock — часы, относительно которых отсекаются наблюдения из будущего.
func WithClock(clock ports.Clock) Option {
	return func(v *ObservationValidator) {
		if clock != nil {
			v.clock = clock
		}
	}
}

// NewObservationValidator — конструктор ObservationValidator.
// Возвращает ErrInvalidObservation (с обёрнутой причиной) при любой проблеме.
func NewObservationValidator(opts ...Option) *ObservationValidator {
	v := &ObservationValidator{clock: ports.SystemClock{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate — проверяет корректность полей наблюдения.
func (v *ObservationValidator) Validate(_ context.Context, obs *domain.Observation) error {
	if obs == nil {
		return fmt.Errorf("%w: наблюдение не может быть nil", ErrInvalidObservation)
	}
	if err := checkKey(obs.Key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObservation, err)
	}
	if domain.IsComposite(obs.Key) {
		return fmt.Errorf("%w: key не может быть составным ключом", ErrInvalidObservation)
	}
	if err := CheckPrice(obs.Price); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObservation, err)
	}
	if obs.ObservedAt < minObservedAt {
		return fmt.Errorf("%w: observedAt некорректен", ErrInvalidObservation)
	}
	if limit := v.clock.Now().Add(MaxClockSkew).UnixMilli(); obs.ObservedAt > limit {
		return fmt.Errorf("%w: observedAt в будущем", ErrInvalidObservation)
	}
	return nil
}

// CheckPrice — цена конечна и неотрицательна.
func CheckPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.New("price должна быть конечным числом")
	}
	if price < 0 {
		return errors.New("price должна быть неотрицательной")
	}
	return nil
}

// ValidateAggregate — проверяет запрос агрегата: список валидных ключей.
// Пустой список допустим (агрегат стоит 0). id может быть пустым (тогда его вычисляет вызывающий).
func ValidateAggregate(id string, candidates []string) error {
	if strings.ContainsAny(id, " \t\n") || len(id) > MaxKeyLen {
		return fmt.Errorf("%w: id некорректен", ErrInvalidRequest)
	}
	if len(candidates) > MaxCandidates {
		return fmt.Errorf("%w: слишком много candidates (%d > %d)", ErrInvalidRequest, len(candidates), MaxCandidates)
	}
	for i, c := range candidates {
		if err := checkKey(c); err != nil {
			return fmt.Errorf("%w: candidates[%d]: %w", ErrInvalidRequest, i, err)
		}
		if domain.IsComposite(c) {
			return fmt.Errorf("%w: candidates[%d] не может быть составным ключом", ErrInvalidRequest, i)
		}
	}
	return nil
}

// checkKey — ключ непустой и ограничен по длине.
func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key обязателен")
	}
	if len(key) > MaxKeyLen {
		return fmt.Errorf("key длиннее %d байт", MaxKeyLen)
	}
	return nil
}
