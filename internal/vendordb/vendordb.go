// Package vendordb loads the OUI (MAC vendor prefix) CSV database used to
// enrich scan results, matching spec.md §6's wire format: header row
// skipped, column 1 a 6-hex-char uppercase OUI key, column 2 the vendor
// name.
//
// Grounded in original_source/src/vendor.rs::Vendor: a failed file open
// disables lookups silently rather than being fatal, and the whole table
// is held in memory so repeated queries don't need to re-scan the file
// (the Rust version instead rewinds a streaming csv::Reader before every
// query; an in-memory map is the simpler Go equivalent the same file
// explicitly allows: "use a read-only table ... or an in-memory map").
package vendordb

import (
	"encoding/csv"
	"fmt"
	"io"
	"net"
	"os"
)

// DB is a read-only OUI -> vendor name table.
type DB struct {
	byOUI map[string]string
}

// Load reads path as a two-column CSV (OUI key, vendor name), skipping the
// header row. A missing file or an unreadable header row is not fatal: it
// returns a DB whose IsLoaded reports false, so lookups are silently
// disabled. Rows that fail to parse or have fewer than two columns are
// skipped.
func Load(path string) *DB {
	db := &DB{}
	if path == "" {
		return db
	}

	file, err := os.Open(path)
	if err != nil {
		return db
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil { // header row
		return &DB{}
	}

	table := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < 2 {
			continue
		}
		table[record[0]] = record[1]
	}

	db.byOUI = table
	return db
}

// IsLoaded reports whether a usable OUI table is available.
func (db *DB) IsLoaded() bool {
	return db != nil && db.byOUI != nil
}

// Lookup resolves a vendor name for mac's OUI (its first three octets),
// or nil if unknown or the database isn't loaded. The OUI key is
// zero-padded per byte, "%02X%02X%02X", so an address like
// 00:22:72:.. produces "002272", never "2272" or "22722".
func (db *DB) Lookup(mac net.HardwareAddr) *string {
	if !db.IsLoaded() || len(mac) < 3 {
		return nil
	}
	key := ouiKey(mac)
	vendor, ok := db.byOUI[key]
	if !ok {
		return nil
	}
	return &vendor
}

func ouiKey(mac net.HardwareAddr) string {
	return fmt.Sprintf("%02X%02X%02X", mac[0], mac[1], mac[2])
}
