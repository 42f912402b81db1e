package script

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/network"
)

// Install downloads a script to path. The file is only replaced when the
// content changed, and the swap is atomic. It reports whether path changed.
func Install(ctx context.Context, url, path string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download %s: %s", url, resp.Status)
	}

	remote, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	fs := filesystem.API()
	if local, err := fs.ReadFile(path); err == nil && sha256.Sum256(local) == sha256.Sum256(remote) {
		return false, nil
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, remote, 0o644); err != nil {
		return false, err
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return false, err
	}

	Forget(path)
	return true, nil
}
