// Package open hands files and URLs to the system's default handler.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/source"
)

// Start opens input with the default handler without waiting for it.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// Page returns the web page of a streaming track, e.g. the YouTube or
// Bandcamp URL it was started from. Server streams and files have none.
func Page(uri string, d source.Descriptor) (string, bool) {
	if d.Kind != source.Streaming {
		return "", false
	}

	u, err := url.Parse(uri)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}

	return u.String(), true
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	default:
		return nil, false
	}
}
