package vendordb

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, rows string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "oui.csv")
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLookupZeroPadding(t *testing.T) {
	path := writeCSV(t, "oui,vendor\n002272,Some Vendor Inc.\n")
	db := Load(path)

	if !db.IsLoaded() {
		t.Fatal("expected database to load")
	}

	mac := net.HardwareAddr{0x00, 0x22, 0x72, 0xaa, 0xbb, 0xcc}
	got := db.Lookup(mac)
	if got == nil || *got != "Some Vendor Inc." {
		t.Fatalf("expected vendor match via zero-padded key, got %v", got)
	}
}

func TestLookupUnknownOUI(t *testing.T) {
	path := writeCSV(t, "oui,vendor\nAABBCC,Known Vendor\n")
	db := Load(path)

	mac := net.HardwareAddr{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	if got := db.Lookup(mac); got != nil {
		t.Fatalf("expected no match, got %v", *got)
	}
}

func TestLoadMissingFileDisablesLookup(t *testing.T) {
	db := Load("/nonexistent/path/oui.csv")
	if db.IsLoaded() {
		t.Fatal("expected IsLoaded() == false for a missing file")
	}
	if got := db.Lookup(net.HardwareAddr{0, 0, 0, 0, 0, 0}); got != nil {
		t.Fatalf("expected nil lookup on unloaded db, got %v", *got)
	}
}

func TestLoadEmptyPathDisablesLookup(t *testing.T) {
	db := Load("")
	if db.IsLoaded() {
		t.Fatal("expected IsLoaded() == false for an empty path")
	}
}
