package domain

import (
	"strings"
	"time"
)

// CompositePrefix — пространство имён синтетических ключей составных предметов.
const CompositePrefix = "GROUP:"

// PriceEntry — последняя успешно полученная цена и момент её получения.
type PriceEntry struct {
	Price     float64   `json:"price"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Observation — цена, пришедшая из внешнего потока (Kafka).
type Observation struct {
	Key        string  `json:"key"`
	Price      float64 `json:"price"`
	ObservedAt int64   `json:"observedAt"` // unix ms
}

// Quote — цена вместе с результатом классификации для потребителя.
type Quote struct {
	Key     string  `json:"key"`
	Price   float64 `json:"price"`
	Display string  `json:"display"`
	Tier    string  `json:"tier"`
	Color   uint32  `json:"color"`
}

// CompositeKey — синтетический ключ составного предмета по его стабильному id.
func CompositeKey(id string) string {
	return CompositePrefix + id
}

// IsComposite — принадлежит ли ключ пространству составных предметов.
func IsComposite(key string) bool {
	return strings.HasPrefix(key, CompositePrefix)
}

// StampMillis — приводит время к точности снапшота (мс), чтобы round-trip был точным.
func StampMillis(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli())
}
