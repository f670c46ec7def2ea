package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/idlecore/internal/codec"
	"github.com/roach88/idlecore/internal/testutil"
)

// createTestStore creates a new store in a temp directory with
// deterministic slot ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithSlotIDGenerator(testutil.NewFixedSlotIDGenerator("slot")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBlob encodes a minimal state holding wood.
func createTestBlob(t *testing.T, wood float64) string {
	t.Helper()
	blob, err := codec.Encode(codec.State{Resources: map[string]float64{"wood": wood}})
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	return blob
}
