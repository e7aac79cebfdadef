//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeEntries — n записей снапшота с уникальными ключами и ms-временем.
func MakeEntries(n int) map[string]domain.PriceEntry {
	base := domain.StampMillis(time.Now())
	out := make(map[string]domain.PriceEntry, n)
	for i := 0; i < n; i++ {
		out["item-"+UniqSuffix()] = domain.PriceEntry{
			Price:     float64(64 * (i + 1)),
			FetchedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
	}
	return out
}

// MakeObservation — валидное наблюдение цены.
func MakeObservation(key string, price float64, at time.Time) domain.Observation {
	return domain.Observation{Key: key, Price: price, ObservedAt: at.UnixMilli()}
}
