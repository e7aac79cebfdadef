package ports

import "time"

// Clock — источник текущего времени (подменяется в тестах).
type Clock interface {
	Now() time.Time
}

// SystemClock — реальные часы.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
