package selector

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/djecho/djecho/auth"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/network"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const subsonicAPIVersion = "1.16.1"

// Subsonic picks tracks from a Subsonic compatible server such as Navidrome.
// The vibe is used as a search query; without hits a random song is played.
type Subsonic struct {
	URL      string
	User     string
	Password string
	Client   string

	http *http.Client
	salt func() string
}

func NewSubsonic(baseURL, user, password, client string) *Subsonic {
	return &Subsonic{
		URL:      strings.TrimSuffix(baseURL, "/"),
		User:     user,
		Password: password,
		Client:   client,
		http:     network.Client,
		salt: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		},
	}
}

// NewSubsonicFromConfig reads the server settings and the password from the keyring.
func NewSubsonicFromConfig() (*Subsonic, error) {
	baseURL, user := viper.GetString(key.SubsonicURL), viper.GetString(key.SubsonicUser)
	if baseURL == "" || user == "" {
		return nil, fmt.Errorf("subsonic selector needs %s and %s", key.SubsonicURL, key.SubsonicUser)
	}

	password, err := auth.Get(auth.SubsonicPassword)
	if err != nil {
		return nil, fmt.Errorf("subsonic password: %w (run `djecho subsonic login`)", err)
	}

	return NewSubsonic(baseURL, user, password, viper.GetString(key.SubsonicClient)), nil
}

func (*Subsonic) Name() string {
	return SubsonicName
}

type subsonicSong struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type subsonicEnvelope struct {
	Response struct {
		Status string `json:"status"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		RandomSongs struct {
			Song []subsonicSong `json:"song"`
		} `json:"randomSongs"`
		SearchResult3 struct {
			Song []subsonicSong `json:"song"`
		} `json:"searchResult3"`
	} `json:"subsonic-response"`
}

func (s *Subsonic) Select(ctx context.Context, vibe string) (Track, error) {
	var songs []subsonicSong

	if vibe = strings.TrimSpace(vibe); vibe != "" {
		env, err := s.call(ctx, "search3", url.Values{"query": {vibe}, "songCount": {"10"}, "artistCount": {"0"}, "albumCount": {"0"}})
		if err != nil {
			log.Warnf("subsonic search %q: %s", vibe, err)
		} else {
			songs = env.Response.SearchResult3.Song
		}
	}

	if len(songs) == 0 {
		env, err := s.call(ctx, "getRandomSongs", url.Values{"size": {"1"}})
		if err != nil {
			return Track{}, err
		}
		songs = env.Response.RandomSongs.Song
	}

	if len(songs) == 0 {
		return Track{}, fmt.Errorf("%w on %s", ErrNoTrack, s.URL)
	}

	song := lo.Sample(songs)
	title := song.Title
	if song.Artist != "" {
		title = song.Artist + " - " + song.Title
	}

	return Track{URI: s.StreamURL(song.ID), Title: title}, nil
}

// Ping checks the credentials against the server.
func (s *Subsonic) Ping(ctx context.Context) error {
	_, err := s.call(ctx, "ping", nil)
	return err
}

// StreamURL is the authenticated stream endpoint for a song.
func (s *Subsonic) StreamURL(id string) string {
	params := s.auth()
	params.Set("id", id)
	return s.URL + "/rest/stream?" + params.Encode()
}

// auth builds token authentication parameters: t = md5(password + salt).
func (s *Subsonic) auth() url.Values {
	salt := s.salt()
	sum := md5.Sum([]byte(s.Password + salt))

	return url.Values{
		"u": {s.User},
		"t": {hex.EncodeToString(sum[:])},
		"s": {salt},
		"v": {subsonicAPIVersion},
		"c": {s.Client},
	}
}

func (s *Subsonic) call(ctx context.Context, endpoint string, params url.Values) (subsonicEnvelope, error) {
	query := s.auth()
	query.Set("f", "json")
	for k, v := range params {
		query[k] = v
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/rest/%s?%s", s.URL, endpoint, query.Encode()), nil)
	if err != nil {
		return subsonicEnvelope{}, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return subsonicEnvelope{}, fmt.Errorf("subsonic %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return subsonicEnvelope{}, fmt.Errorf("subsonic %s: %s", endpoint, resp.Status)
	}

	var env subsonicEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return subsonicEnvelope{}, fmt.Errorf("subsonic %s: decode: %w", endpoint, err)
	}

	if env.Response.Status != "ok" {
		if e := env.Response.Error; e != nil {
			return env, fmt.Errorf("subsonic %s: %s (code %d)", endpoint, e.Message, e.Code)
		}
		return env, errors.New("subsonic " + endpoint + ": request failed")
	}

	return env, nil
}
