package domain

import (
	"testing"
	"time"
)

func TestHourStart_TruncatesMinutesAndSeconds(t *testing.T) {
	in := time.Date(2026, 6, 22, 8, 40, 31, 999, time.UTC)
	got := HourStart(in)
	want := time.Date(2026, 6, 22, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("HourStart = %v, want %v", got, want)
	}
}

func TestHourStart_NormalizesToUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}

	in := time.Date(2026, 6, 22, 8, 40, 0, 0, loc)
	got := HourStart(in)
	if got.Location() != time.UTC {
		t.Fatalf("location = %v, want UTC", got.Location())
	}
	if !got.Equal(time.Date(2026, 6, 22, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("HourStart = %v", got)
	}
}

func TestHourStart_AlreadyAlignedIsUnchanged(t *testing.T) {
	in := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	if got := HourStart(in); !got.Equal(in) {
		t.Fatalf("HourStart = %v, want %v", got, in)
	}
}

func TestFormatDatePtBR(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 6, 22, 8, 40, 0, 0, time.UTC), "dia 22 de junho, às 8:40h"},
		{time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC), "dia 07 de janeiro, às 15:00h"},
		{time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC), "dia 31 de dezembro, às 23:00h"},
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "dia 01 de março, às 0:00h"},
	}

	for _, tc := range tests {
		if got := FormatDatePtBR(tc.in); got != tc.want {
			t.Errorf("FormatDatePtBR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAppointmentPast(t *testing.T) {
	now := time.Date(2026, 6, 22, 12, 0, 0, 0, time.UTC)

	past := Appointment{Date: now.Add(-time.Hour)}
	if !past.Past(now) {
		t.Fatalf("expected past appointment")
	}

	future := Appointment{Date: now.Add(time.Hour)}
	if future.Past(now) {
		t.Fatalf("expected future appointment")
	}
}

func TestAppointmentCancelable(t *testing.T) {
	date := time.Date(2026, 6, 22, 12, 0, 0, 0, time.UTC)
	appt := Appointment{Date: date}

	if deadline := appt.CancelDeadline(); !deadline.Equal(date.Add(-2 * time.Hour)) {
		t.Fatalf("deadline = %v", deadline)
	}

	if !appt.Cancelable(date.Add(-3 * time.Hour)) {
		t.Fatalf("expected cancelable 3h before")
	}
	// the deadline itself is no longer inside the window
	if appt.Cancelable(date.Add(-2 * time.Hour)) {
		t.Fatalf("expected not cancelable at the deadline")
	}
	if appt.Cancelable(date.Add(-time.Hour)) {
		t.Fatalf("expected not cancelable 1h before")
	}
}
