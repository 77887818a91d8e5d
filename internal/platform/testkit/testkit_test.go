package testkit

import (
	"strings"
	"testing"
)

var seamFn = func() string { return "real" }

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	MustContain(t, "rollup finished buckets=3", "buckets=3")
	MustContain(t, strings.Repeat("x", 600)+"needle", "needle")
}

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &seamFn, func() string { return "fake" })
		if seamFn() != "fake" {
			t.Fatalf("swap not applied")
		}
	})
	if seamFn() != "real" {
		t.Fatalf("swap not restored")
	}
}
