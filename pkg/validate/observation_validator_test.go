package validate_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/pkg/validate"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func validObservation() *domain.Observation {
	return &domain.Observation{Key: "Warp", Price: 262144, ObservedAt: 1700000000000}
}

func TestObservationValidator_Validate(t *testing.T) {
	v := validate.NewObservationValidator()
	ctx := context.Background()

	t.Run("valid observation", func(t *testing.T) {
		if err := v.Validate(ctx, validObservation()); err != nil {
			t.Fatalf("expected valid observation, got: %v", err)
		}
	})

	t.Run("zero price is valid", func(t *testing.T) {
		o := validObservation()
		o.Price = 0
		if err := v.Validate(ctx, o); err != nil {
			t.Fatalf("expected valid observation, got: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(o *domain.Observation)
	}{
		{"empty key", func(o *domain.Observation) { o.Key = "  " }},
		{"long key", func(o *domain.Observation) { o.Key = strings.Repeat("k", validate.MaxKeyLen+1) }},
		{"negative price", func(o *domain.Observation) { o.Price = -1 }},
		{"nan price", func(o *domain.Observation) { o.Price = math.NaN() }},
		{"inf price", func(o *domain.Observation) { o.Price = math.Inf(1) }},
		{"zero observedAt", func(o *domain.Observation) { o.ObservedAt = 0 }},
		{"composite key", func(o *domain.Observation) { o.Key = domain.CompositeKey("bow-1") }},
		{"observedAt far in future", func(o *domain.Observation) {
			o.ObservedAt = time.Now().AddDate(100, 0, 0).UnixMilli()
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validObservation()
			tc.mutate(o)
			if err := v.Validate(ctx, o); !errors.Is(err, validate.ErrInvalidObservation) {
				t.Fatalf("expected ErrInvalidObservation, got: %v", err)
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		if err := v.Validate(ctx, nil); !errors.Is(err, validate.ErrInvalidObservation) {
			t.Fatalf("expected ErrInvalidObservation, got: %v", err)
		}
	})
}

func TestObservationValidator_ClockSkew(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	v := validate.NewObservationValidator(validate.WithClock(fixedClock{now: now}))
	ctx := context.Background()

	o := validObservation()
	o.ObservedAt = now.Add(validate.MaxClockSkew).UnixMilli()
	if err := v.Validate(ctx, o); err != nil {
		t.Fatalf("observation within skew must be valid, got: %v", err)
	}

	o.ObservedAt = now.Add(validate.MaxClockSkew + time.Millisecond).UnixMilli()
	if err := v.Validate(ctx, o); !errors.Is(err, validate.ErrInvalidObservation) {
		t.Fatalf("expected ErrInvalidObservation, got: %v", err)
	}
}

func TestValidateAggregate(t *testing.T) {
	if err := validate.ValidateAggregate("", []string{"A", "B"}); err != nil {
		t.Fatalf("expected valid, got: %v", err)
	}
	if err := validate.ValidateAggregate("bow-42", []string{"A"}); err != nil {
		t.Fatalf("expected valid, got: %v", err)
	}
	if err := validate.ValidateAggregate("box1", []string{}); err != nil {
		t.Fatalf("empty candidates must be valid, got: %v", err)
	}
	if err := validate.ValidateAggregate("", nil); err != nil {
		t.Fatalf("nil candidates must be valid, got: %v", err)
	}

	many := make([]string, validate.MaxCandidates+1)
	for i := range many {
		many[i] = "k"
	}
	bad := []struct {
		name       string
		id         string
		candidates []string
	}{
		{"empty candidate", "", []string{"A", ""}},
		{"composite candidate", "", []string{domain.CompositeKey("x")}},
		{"id with space", "a b", []string{"A"}},
		{"too many", "", many},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if err := validate.ValidateAggregate(tc.id, tc.candidates); !errors.Is(err, validate.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestCheckPrice(t *testing.T) {
	if err := validate.CheckPrice(64); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := validate.CheckPrice(math.NaN()); err == nil {
		t.Fatalf("expected error for NaN")
	}
}
