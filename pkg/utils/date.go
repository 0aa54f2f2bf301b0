package utils

import (
	"errors"
	"strings"
	"time"
)

// ParseDate interpreta datas de query string no formato YYYY-MM-DD.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// Formatos aceitos em arquivos importados, em ordem de prioridade.
// Datas ambíguas com barras seguem a convenção MM/DD/YYYY.
var flexibleLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var ErrUnparsableDate = errors.New("unparsable date")

// ParseFlexibleDate tenta interpretar o valor de uma célula de data em
// qualquer formato aceito e normaliza o resultado para meia-noite UTC,
// descartando o componente de hora.
func ParseFlexibleDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparsableDate
	}

	for _, layout := range flexibleLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		return DateOnlyUTC(parsed), nil
	}

	return time.Time{}, ErrUnparsableDate
}

// DateOnlyUTC remove o componente de hora de um instante.
func DateOnlyUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
