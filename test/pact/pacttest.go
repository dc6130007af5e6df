//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "orders-api"
	ConsumerName = "storefront"

	StateCatalogSeeded   = "customer C-101 and products P-201, P-202 exist"
	StateCustomerMissing = "no customer C-404"
	StateOrderMissing    = "no order O-404"
)

const (
	ExistingCustomerID = "C-101"
	MissingCustomerID  = "C-404"
	MissingOrderID     = "O-404"

	KeyboardProductID = "P-201"
	MouseProductID    = "P-202"
)

// SeededProduct describes a catalog entry the provider creates for StateCatalogSeeded.
type SeededProduct struct {
	ID       string
	Name     string
	Price    string
	Quantity int64
}

// SeededProducts returns the catalog used by the order interactions.
func SeededProducts() []SeededProduct {
	return []SeededProduct{
		{ID: KeyboardProductID, Name: "Pact Keyboard", Price: "10.00", Quantity: 5},
		{ID: MouseProductID, Name: "Pact Mouse", Price: "20.00", Quantity: 2},
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
