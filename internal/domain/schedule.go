package domain

import (
	"fmt"
	"time"
)

// HourStart truncates an instant to its hour boundary in UTC. Bookable
// slots have no sub-hour granularity, so every stored appointment date
// goes through this first.
func HourStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDatePtBR renders an instant the way notifications show it to
// providers: "dia 22 de junho, às 8:40h".
func FormatDatePtBR(t time.Time) string {
	return fmt.Sprintf("dia %02d de %s, às %d:%02dh",
		t.Day(), ptMonths[t.Month()-1], t.Hour(), t.Minute())
}
