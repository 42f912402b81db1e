// Package source classifies a playable URI or path by where it comes from.
//
// Classification is total: every input yields a Descriptor, with Unknown as the
// catch-all. Nothing here talks to the network; files are only checked for existence.
package source

import (
	"maps"
	"strings"
)

// Kind is the provenance class of a track.
type Kind string

const (
	Unknown       Kind = "unknown"
	Streaming     Kind = "streaming"
	LocalFile     Kind = "local_file"
	PlaylistFile  Kind = "playlist_file"
	GenericStream Kind = "generic_stream"
)

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{Streaming, LocalFile, PlaylistFile, GenericStream, Unknown}
}

// Label is the human readable kind name.
func (k Kind) Label() string {
	switch k {
	case Streaming:
		return "Streaming"
	case LocalFile:
		return "Local file"
	case PlaylistFile:
		return "Playlist"
	case GenericStream:
		return "Stream"
	default:
		return "Unknown"
	}
}

// Descriptor is the result of classification. It is a value type and never
// changes after Classify returns it; Attributes hands out copies.
type Descriptor struct {
	Kind Kind
	// Provider is the name of the rule that matched, empty when no rule did.
	Provider    string
	DisplayName string
	Player      string
	Icon        string

	attributes map[string]string
}

func newDescriptor(kind Kind, provider, name, player, icon string, attrs map[string]string) Descriptor {
	return Descriptor{
		Kind:        kind,
		Provider:    provider,
		DisplayName: name,
		Player:      player,
		Icon:        icon,
		attributes:  maps.Clone(attrs),
	}
}

// Attr returns a single attribute and whether it was recorded.
func (d Descriptor) Attr(name string) (string, bool) {
	v, ok := d.attributes[name]
	return v, ok
}

// Attributes returns a copy of the provenance details.
func (d Descriptor) Attributes() map[string]string {
	if d.attributes == nil {
		return map[string]string{}
	}
	return maps.Clone(d.attributes)
}

// IsRemote reports whether the track is fetched over the network.
func (d Descriptor) IsRemote() bool {
	return d.Kind == Streaming || d.Kind == GenericStream
}

func (d Descriptor) String() string {
	return d.DisplayName
}

// Document is the serializable form of a Descriptor.
type Document struct {
	Kind        Kind              `json:"kind" jsonschema:"enum=unknown,enum=streaming,enum=local_file,enum=playlist_file,enum=generic_stream"`
	Provider    string            `json:"provider,omitempty" jsonschema:"description=Name of the matching rule"`
	DisplayName string            `json:"display_name"`
	Player      string            `json:"player"`
	Icon        string            `json:"icon"`
	Attributes  map[string]string `json:"attributes"`
}

func (d Descriptor) Document() Document {
	return Document{
		Kind:        d.Kind,
		Provider:    d.Provider,
		DisplayName: d.DisplayName,
		Player:      d.Player,
		Icon:        d.Icon,
		Attributes:  d.Attributes(),
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
