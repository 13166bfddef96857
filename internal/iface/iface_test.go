package iface

import "testing"

func TestRequireRootRejectsNonRoot(t *testing.T) {
	if err := RequireRoot(1000); err == nil {
		t.Fatal("expected an error for a non-root euid")
	}
}

func TestRequireRootAcceptsRoot(t *testing.T) {
	if err := RequireRoot(0); err != nil {
		t.Fatalf("expected no error for euid 0, got %v", err)
	}
}

func TestSelectMissingInterfaceErrors(t *testing.T) {
	if _, _, _, err := Select("this-interface-does-not-exist-xyz"); err == nil {
		t.Fatal("expected an error selecting a nonexistent interface")
	}
}
