package heatmap

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Show opens path in an image viewer and waits for the launched command to exit.
// An empty viewer selects the platform default. On Linux xdg-open usually hands the
// file to the desktop and returns at once; set a viewer such as "feh" to block.
func Show(ctx context.Context, viewer, path string) error {
	name, args := viewerCommand(viewer, runtime.GOOS)
	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open heatmap with %s: %w", name, err)
	}
	return nil
}

func viewerCommand(viewer, goos string) (string, []string) {
	if f := strings.Fields(viewer); len(f) > 0 {
		return f[0], f[1:]
	}
	switch goos {
	case "darwin":
		return "open", []string{"-W"}
	case "windows":
		return "cmd", []string{"/c", "start", "/wait", ""}
	default:
		return "xdg-open", nil
	}
}
