// Package badge holds the static platform badge catalog used by the
// platform_logo element and the public link list.
package badge

import "strings"

// MaxSelected caps how many badges a logo row may carry.
const MaxSelected = 4

// Badge is a static lookup entry for a supported streaming or social
// platform.
type Badge struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	Color   string `json:"color"`
}

// catalog is ordered; List preserves this order for pickers.
var catalog = []Badge{
	{ID: "spotify", Name: "Spotify", LogoURL: "/badges/spotify.png", Color: "#1DB954"},
	{ID: "apple-music", Name: "Apple Music", LogoURL: "/badges/apple-music.png", Color: "#FA243C"},
	{ID: "youtube-music", Name: "YouTube Music", LogoURL: "/badges/youtube-music.png", Color: "#FF0000"},
	{ID: "youtube", Name: "YouTube", LogoURL: "/badges/youtube.png", Color: "#FF0000"},
	{ID: "amazon-music", Name: "Amazon Music", LogoURL: "/badges/amazon-music.png", Color: "#25D1DA"},
	{ID: "deezer", Name: "Deezer", LogoURL: "/badges/deezer.png", Color: "#A238FF"},
	{ID: "tidal", Name: "Tidal", LogoURL: "/badges/tidal.png", Color: "#000000"},
	{ID: "soundcloud", Name: "SoundCloud", LogoURL: "/badges/soundcloud.png", Color: "#FF5500"},
	{ID: "instagram", Name: "Instagram", LogoURL: "/badges/instagram.png", Color: "#E4405F"},
	{ID: "tiktok", Name: "TikTok", LogoURL: "/badges/tiktok.png", Color: "#010101"},
}

// DefaultSelection is applied when a promotion has no badge selection yet.
func DefaultSelection() []string {
	return []string{"spotify", "apple-music", "youtube-music"}
}

// List returns the full catalog in display order.
func List() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the badge with the given id.
func Lookup(id string) (Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Monogram derives a two-letter fallback glyph for a platform with no badge
// entry, e.g. "Bandcamp Daily" -> "BD", "tidal" -> "TI".
func Monogram(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 0:
		return "??"
	case 1:
		word := []rune(strings.ToUpper(fields[0]))
		if len(word) == 1 {
			return string(word) + string(word)
		}
		return string(word[:2])
	default:
		first := []rune(fields[0])
		second := []rune(fields[1])
		return strings.ToUpper(string(first[:1]) + string(second[:1]))
	}
}
