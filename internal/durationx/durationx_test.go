package durationx

import "testing"

func TestParseMilliseconds(t *testing.T) {
	got, err := Parse("1000")
	if err != nil || got != 1000 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestParseSeconds(t *testing.T) {
	got, err := Parse("5s")
	if err != nil || got != 5000 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestParseMinutes(t *testing.T) {
	got, err := Parse("3m")
	if err != nil || got != 180_000 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestParseHours(t *testing.T) {
	got, err := Parse("2h")
	if err != nil || got != 7_200_000 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestParseDeniesNegative(t *testing.T) {
	if _, err := Parse("-45"); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestParseDeniesFloat(t *testing.T) {
	if _, err := Parse("3.235"); err == nil {
		t.Fatal("expected error for floating-point duration")
	}
}

func TestParseDeniesInvalidSuffix(t *testing.T) {
	if _, err := Parse("3z"); err == nil {
		t.Fatal("expected error for unknown suffix")
	}
}

func TestFormatMilliseconds(t *testing.T) {
	if got := Format(500); got != "500ms" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := Format(2500); got != "2s" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := Format(300_000); got != "5m" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatHours(t *testing.T) {
	if got := Format(4_200_000); got != "1h" {
		t.Fatalf("got %q", got)
	}
}
