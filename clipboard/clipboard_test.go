package clipboard

import "testing"

// Write must fail cleanly, never reach the library, when the clipboard
// was not initialized successfully.
func TestWriteWithoutInit(t *testing.T) {
	available = false
	if err := Write("answer"); err == nil {
		t.Error("expected error writing to an uninitialized clipboard")
	}
}
