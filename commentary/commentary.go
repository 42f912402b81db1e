// Package commentary writes the one-line DJ talk played before each track.
package commentary

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/log"
	"github.com/spf13/viper"
)

// Fallback is said whenever the generator fails.
const Fallback = "Let's get right to the music."

// Commentator produces commentary for a listener's request. It never fails:
// errors are logged and replaced with Fallback.
type Commentator interface {
	Comment(ctx context.Context, vibe string) string
}

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return string(out), err
}

// Command asks a local model runner, `<Command> run <Model> <prompt>`.
type Command struct {
	Command string
	Model   string
	Timeout time.Duration

	run Runner
}

func NewCommand(command, model string, timeout time.Duration) *Command {
	return &Command{Command: command, Model: model, Timeout: timeout, run: execRunner}
}

// New reads the commentary settings.
func New() *Command {
	return NewCommand(
		viper.GetString(key.CommentaryCommand),
		viper.GetString(key.CommentaryModel),
		time.Duration(viper.GetInt(key.CommentaryTimeout))*time.Second,
	)
}

// Prompt is what the model is asked for a vibe.
func Prompt(vibe string) string {
	return fmt.Sprintf(
		"You are %s, a cool late-night radio host. User said: %s\n"+
			"Reply with one-sentence commentary. Do NOT mention the track path or title.",
		constant.DJName, vibe,
	)
}

func (c *Command) Comment(ctx context.Context, vibe string) string {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	log.Infof("generating commentary with %s %s", c.Command, c.Model)
	out, err := c.run(ctx, c.Command, "run", c.Model, Prompt(vibe))
	if err != nil {
		log.Errorf("commentary: %s", err)
		return Fallback
	}

	line := strings.TrimSpace(out)
	if line == "" {
		log.Warn("commentary: empty response")
		return Fallback
	}

	log.Infof("commentary: %q", line)
	return line
}

// Static always says the same line.
type Static string

func (s Static) Comment(context.Context, string) string {
	return string(s)
}
