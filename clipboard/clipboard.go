package clipboard

import (
	"fmt"

	"golang.design/x/clipboard"
)

var available bool

// Init prepares the system clipboard. A failure is remembered: the
// underlying library declares Read/Write after a failed Init as unsafe,
// so later Writes degrade to an error instead of reaching it.
func Init() error {
	if err := clipboard.Init(); err != nil {
		available = false
		return err
	}
	available = true
	return nil
}

// Write puts text on the system clipboard, so the picked answer can be
// pasted straight into the quiz app's chat or notes. It fails cleanly
// when the clipboard never initialized.
func Write(text string) error {
	if !available {
		return fmt.Errorf("clipboard not available")
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
