package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatMoney formata um valor monetário para exibição: arredonda para
// duas casas, remove zeros à direita e separa milhares com vírgula.
// Ex.: 16666.666 -> "16,666.67", 1000 -> "1,000".
func FormatMoney(f float64) string {
	d := decimal.NewFromFloat(f).Round(2)

	negative := d.IsNegative()
	if negative {
		d = d.Abs()
	}

	text := d.String()
	intPart := text
	fracPart := ""
	if idx := strings.IndexByte(text, '.'); idx >= 0 {
		intPart = text[:idx]
		fracPart = strings.TrimRight(text[idx+1:], "0")
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	return b.String()
}

// FormatPercent formata um percentual com uma casa decimal.
func FormatPercent(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
