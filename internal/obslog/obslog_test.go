package obslog

import "testing"

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose", false); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "warning", "error", "DEBUG"} {
		if _, err := New(level, true); err != nil {
			t.Fatalf("level %q: unexpected error: %v", level, err)
		}
	}
}
