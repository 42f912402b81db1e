package player

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/djecho/djecho/log"
)

// Binary is a discovered player executable.
type Binary struct {
	// Name is the executable name without directory or .exe suffix, e.g. "mpv".
	Name string
	Path string
}

var lookPath = exec.LookPath

// Discover returns the first candidate found on PATH.
func Discover(candidates []string) (Binary, error) {
	for _, candidate := range candidates {
		path, err := lookPath(candidate)
		if err != nil {
			log.Debugf("player %s not found: %s", candidate, err)
			continue
		}

		return Binary{Name: binaryName(candidate), Path: path}, nil
	}

	return Binary{}, fmt.Errorf("%w (tried %s)", ErrNoPlayer, strings.Join(candidates, ", "))
}

func binaryName(executable string) string {
	return strings.TrimSuffix(filepath.Base(executable), ".exe")
}

// launchArgs builds the command line for a player. The target is always the
// first positional argument; flags keep the player audio-only and silent.
func launchArgs(name, target, title string, volume int, socket string) []string {
	var args []string

	switch name {
	case "mpv":
		args = []string{
			"--no-video",
			"--no-terminal",
			"--really-quiet",
			"--force-window=no",
			fmt.Sprintf("--volume=%d", volume),
		}
		if title != "" {
			args = append(args, fmt.Sprintf("--force-media-title=%s", sanitizeTitle(title)))
		}
		if socket != "" {
			args = append(args, fmt.Sprintf("--input-ipc-server=%s", socket))
		}
	case "ffplay":
		args = []string{
			"-nodisp",
			"-autoexit",
			"-loglevel", "quiet",
			"-volume", fmt.Sprint(volume),
		}
	case "vlc", "cvlc":
		args = []string{
			"-I", "dummy",
			"--no-video",
			"--play-and-exit",
			"--quiet",
			fmt.Sprintf("--gain=%.2f", float64(volume)/100),
		}
	}

	return append(args, target)
}
