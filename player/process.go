package player

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
)

// Process is a handle to a running player.
type Process interface {
	PID() int
	// Exited is closed once the process has been reaped.
	Exited() <-chan struct{}
	// ExitErr is the wait error, valid after Exited is closed.
	ExitErr() error
	// Terminate asks the process to quit.
	Terminate() error
	Kill() error
}

// Launcher starts player processes.
type Launcher interface {
	Launch(binary string, args []string) (Process, error)
}

// ExecLauncher runs players as detached child processes with discarded output.
type ExecLauncher struct{}

func (ExecLauncher) Launch(binary string, args []string) (Process, error) {
	cmd := exec.Command(binary, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &execProcess{cmd: cmd, exited: make(chan struct{})}
	go func() {
		p.err = cmd.Wait()
		close(p.exited)
	}()

	return p, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	exited chan struct{}
	err    error
}

func (p *execProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Exited() <-chan struct{} {
	return p.exited
}

func (p *execProcess) ExitErr() error {
	select {
	case <-p.exited:
		return p.err
	default:
		return nil
	}
}

func (p *execProcess) Terminate() error {
	return terminateProcess(p.cmd)
}

func (p *execProcess) Kill() error {
	return killProcess(p.cmd)
}

// sanitizeMediaTarget rejects anything a player could mistake for a flag and
// only lets http(s) URLs and file paths through. The target is returned trimmed
// but otherwise as given, so it classifies the way the caller wrote it.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", ErrEmptyTarget
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", fmt.Errorf("%w: control characters", ErrInvalidTarget)
	}

	if strings.HasPrefix(t, "-") {
		return "", fmt.Errorf("%w: must not start with '-'", ErrInvalidTarget)
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return t, nil
		default:
			return "", fmt.Errorf("%w: unsupported scheme %s", ErrInvalidTarget, u.Scheme)
		}
	}

	return t, nil
}

// launchTarget is the argument handed to the player for a sanitized target.
// Paths are cleaned, and a cleaned path never starts with '-'.
func launchTarget(target string) string {
	if strings.Contains(target, "://") {
		return target
	}

	cleaned := filepath.Clean(target)
	if strings.HasPrefix(cleaned, "-") {
		return "." + string(filepath.Separator) + cleaned
	}
	return cleaned
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
