package main

import (
	"testing"

	"github.com/sandevgo/bondtrack/internal/core"
)

func TestRootCommandIdentity(t *testing.T) {
	t.Parallel()

	if rootCmd.Use != core.BondtrackName {
		t.Errorf("root Use = %q, want %q", rootCmd.Use, core.BondtrackName)
	}
	if rootCmd.Version != core.BondtrackVersion {
		t.Errorf("root Version = %q, want %q", rootCmd.Version, core.BondtrackVersion)
	}
}
