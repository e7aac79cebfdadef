package validate

import "fmt"

// Summary — итог проверки файла наблюдений.
type Summary struct {
	Valid        int
	Invalid      int
	InvalidLines []int // номера строк (с 1) невалидных записей JSONL
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}
