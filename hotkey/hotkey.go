package hotkey

import (
	"log"
	"strings"

	hook "github.com/robotn/gohook"
)

// Listen registers a global hotkey like "Ctrl+Alt+Q" and invokes onTrigger
// from the hook goroutine each time the combination fires. Callers should
// post into their own loop rather than doing work in the callback.
func Listen(combo string, onTrigger func()) {
	keys := parseCombo(combo)
	if len(keys) == 0 {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		hook.Register(hook.KeyDown, keys, func(hook.Event) {
			onTrigger()
		})
		log.Printf("Hotkey registered: %v", keys)

		events := hook.Start()
		<-hook.Process(events)
	}()
}

// parseCombo converts a "Ctrl+Alt+Q" style string to gohook key names.
func parseCombo(combo string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "win", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}
