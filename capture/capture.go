package capture

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os/exec"

	"github.com/kbinani/screenshot"
)

// Provider produces a PNG of the full device display. Errors are opaque to
// the pipeline and fatal to the run that triggered the capture.
type Provider interface {
	Capture(ctx context.Context) ([]byte, error)
}

// ADB captures an Android device screen through adb. The device is an
// exclusive resource, so callers must not overlap captures.
type ADB struct {
	// Serial selects a device when more than one is attached. Empty means
	// the single connected device.
	Serial string
}

func (a *ADB) Capture(ctx context.Context) ([]byte, error) {
	var args []string
	if a.Serial != "" {
		args = append(args, "-s", a.Serial)
	}
	// exec-out streams raw bytes, avoiding the CRLF mangling of `adb shell`.
	args = append(args, "exec-out", "screencap", "-p")

	cmd := exec.CommandContext(ctx, "adb", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("adb screencap failed: %v (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}

// Display captures a local display instead of a device, for quiz apps
// running in an emulator or mirroring window.
type Display struct {
	Index int
}

func (d *Display) Capture(ctx context.Context) ([]byte, error) {
	if n := screenshot.NumActiveDisplays(); d.Index < 0 || d.Index >= n {
		return nil, fmt.Errorf("display %d not available (%d active)", d.Index, n)
	}
	img, err := screenshot.CaptureDisplay(d.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %v", d.Index, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode screenshot as PNG: %v", err)
	}
	return buf.Bytes(), nil
}
