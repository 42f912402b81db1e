// Package speech renders DJ commentary to audio clips the player can play.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/djecho/djecho/auth"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/network"
	"github.com/djecho/djecho/where"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Speaker turns text into an audio file. An empty path means there is nothing to play
// and the caller should show the text instead.
type Speaker interface {
	Speak(ctx context.Context, text string) (path string, err error)
}

// Null never produces audio.
type Null struct{}

func (Null) Speak(context.Context, string) (string, error) {
	return "", nil
}

const elevenLabsEndpoint = "https://api.elevenlabs.io/v1/text-to-speech/"

// ElevenLabs synthesizes speech with the ElevenLabs text-to-speech API.
type ElevenLabs struct {
	APIKey  string
	VoiceID string
	Model   string

	endpoint string
	http     *http.Client
	dir      func() string
}

func NewElevenLabs(apiKey, voiceID, model string) *ElevenLabs {
	return &ElevenLabs{
		APIKey:   apiKey,
		VoiceID:  voiceID,
		Model:    model,
		endpoint: elevenLabsEndpoint,
		http:     network.Client,
		dir:      where.Temp,
	}
}

// New returns ElevenLabs when speech is enabled and an API key is stored, Null otherwise.
func New() Speaker {
	if !viper.GetBool(key.SpeechEnable) {
		return Null{}
	}

	apiKey, err := auth.Get(auth.ElevenLabsKey)
	if err != nil {
		if !errors.Is(err, auth.ErrNotFound) {
			log.Warnf("elevenlabs api key: %s", err)
		}
		log.Info("no elevenlabs api key, commentary will be printed")
		return Null{}
	}

	return NewElevenLabs(apiKey, viper.GetString(key.SpeechVoiceID), viper.GetString(key.SpeechModel))
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (e *ElevenLabs) Speak(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	body, err := json.Marshal(ttsRequest{Text: text, ModelID: e.Model})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+e.VoiceID, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", e.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	log.Infof("requesting speech for %q", text)
	resp, err := e.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("elevenlabs: %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	path := filepath.Join(e.dir(), uuid.NewString()+".mp3")
	file, err := filesystem.API().Create(path)
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = filesystem.API().Remove(path)
		return "", fmt.Errorf("elevenlabs: %w", err)
	}

	if err = file.Close(); err != nil {
		return "", err
	}

	log.Infof("commentary saved to %s", path)
	return path, nil
}
