// Package youtube recognizes video and playlist identifiers in user input.
package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/verte-zerg/cleantube/internal/model"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsVideoID reports whether value has the syntactic shape of a video ID.
// No validation beyond shape is attempted.
func IsVideoID(value string) bool {
	return videoIDPattern.MatchString(value)
}

// Parsed describes a recognized video or playlist reference.
type Parsed struct {
	Type         model.ItemType
	ID           string
	CanonicalURL string
}

// Item builds a saved item from the parsed reference with a default title.
func (p Parsed) Item() model.Item {
	title := "Video " + p.ID
	if p.Type == model.TypePlaylist {
		title = "Playlist " + p.ID
	}
	return model.Item{Type: p.Type, ID: p.ID, URL: p.CanonicalURL, Title: title}
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// PlaylistURL returns the canonical URL for a playlist ID.
func PlaylistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + url.QueryEscape(id)
}

// ThumbnailURL returns the thumbnail URL for video items, or "" for
// playlists, which have no stable thumbnail endpoint.
func ThumbnailURL(it model.Item) string {
	if it.Type != model.TypeVideo {
		return ""
	}
	return "https://i.ytimg.com/vi/" + url.PathEscape(it.ID) + "/mqdefault.jpg"
}

func video(id string) *Parsed {
	return &Parsed{Type: model.TypeVideo, ID: id, CanonicalURL: WatchURL(id)}
}

func playlist(id string) *Parsed {
	return &Parsed{Type: model.TypePlaylist, ID: id, CanonicalURL: PlaylistURL(id)}
}

// ParseInput recognizes a bare video ID or any of the common YouTube URL
// forms (watch, youtu.be, shorts, live, embed, playlist). It returns nil
// when the input is not recognizable.
func ParseInput(input string) *Parsed {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil
	}

	if IsVideoID(raw) {
		return video(raw)
	}

	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	path := u.Path
	v := u.Query().Get("v")
	list := u.Query().Get("list")

	if host == "youtu.be" {
		shortID := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
		if IsVideoID(shortID) {
			return video(shortID)
		}
	}

	isYouTubeHost := host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") ||
		host == "youtube-nocookie.com" || strings.HasSuffix(host, ".youtube-nocookie.com")
	if !isYouTubeHost {
		return nil
	}

	if v != "" && IsVideoID(v) {
		return video(v)
	}

	if strings.HasPrefix(path, "/shorts/") || strings.HasPrefix(path, "/live/") {
		if id := pathSegment(path, 2); IsVideoID(id) {
			return video(id)
		}
	}

	if strings.HasPrefix(path, "/embed/") {
		id := pathSegment(path, 2)
		if id == "videoseries" && list != "" {
			return playlist(list)
		}
		if IsVideoID(id) {
			return video(id)
		}
	}

	if list != "" {
		return playlist(list)
	}

	return nil
}

func pathSegment(path string, i int) string {
	parts := strings.Split(path, "/")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}
