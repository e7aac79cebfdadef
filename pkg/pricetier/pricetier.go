// Package pricetier — чистая классификация цены: краткая запись в номиналах
// (eb/le/stx) и уровень ценности для подсветки.
package pricetier

import (
	"math"
	"strconv"
)

// Номиналы, от меньшего к большему.
const (
	EmeraldBlock  = 64
	LiquidEmerald = 4096
	Stack         = 262144
)

// Tier — уровень ценности. Порядок значений важен: None < Green < Orange < Red.
type Tier int

const (
	TierNone Tier = iota
	TierGreen
	TierOrange
	TierRed
)

// ARGB-цвета подсветки.
const (
	ColorGreen  uint32 = 0xFF00FF00
	ColorOrange uint32 = 0xFFFF8000
	ColorRed    uint32 = 0xFFFF4000
)

type denomination struct {
	value  float64
	suffix string
}

// от большего к меньшему — берём первый подходящий.
var denominations = []denomination{
	{Stack, "stx"},
	{LiquidEmerald, "le"},
	{EmeraldBlock, "eb"},
}

// Classify — возвращает краткую запись цены и её уровень.
// Отрицательные значения и NaN вне контракта: ("0", TierNone).
func Classify(price float64) (string, Tier) {
	if math.IsNaN(price) || price < 0 {
		return "0", TierNone
	}
	return Display(price), TierOf(price)
}

// Display — краткая запись: целая часть цены в наибольшем достигнутом номинале.
func Display(price float64) string {
	for _, d := range denominations {
		if price >= d.value {
			return strconv.FormatInt(int64(price/d.value), 10) + d.suffix
		}
	}
	return strconv.FormatInt(int64(price), 10)
}

// TierOf — уровень по кратным LiquidEmerald.
func TierOf(price float64) Tier {
	switch {
	case price >= Stack:
		return TierRed
	case price >= LiquidEmerald*10:
		return TierOrange
	case price >= LiquidEmerald*2:
		return TierGreen
	default:
		return TierNone
	}
}

// Visible — стоит ли вообще показывать цену (дешевле одного le не подсвечиваем).
func Visible(price float64) bool {
	return price > LiquidEmerald
}

func (t Tier) String() string {
	switch t {
	case TierGreen:
		return "green"
	case TierOrange:
		return "orange"
	case TierRed:
		return "red"
	default:
		return "none"
	}
}

// Color — ARGB заливки; у TierNone заливки нет.
func (t Tier) Color() uint32 {
	switch t {
	case TierGreen:
		return ColorGreen
	case TierOrange:
		return ColorOrange
	case TierRed:
		return ColorRed
	default:
		return 0
	}
}

// ParseTier — обратное к String; неизвестное значение → TierNone, false.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "none":
		return TierNone, true
	case "green":
		return TierGreen, true
	case "orange":
		return TierOrange, true
	case "red":
		return TierRed, true
	default:
		return TierNone, false
	}
}
