package source

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"strings"
)

// YouTubeLoader fetches video transcripts from YouTube's timedtext caption
// endpoint, discovered through the watch page's player payload.
type YouTubeLoader struct {
	client *http.Client
}

// NewYouTubeLoader creates a YouTube transcript loader.
func NewYouTubeLoader() *YouTubeLoader {
	return &YouTubeLoader{client: newHTTPClient()}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

type transcript struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// Load fetches the transcript for a video id.
func (l *YouTubeLoader) Load(ctx context.Context, videoID string) (string, error) {
	page, err := fetch(ctx, l.client, "https://www.youtube.com/watch?v="+videoID+"&hl=en", nil)
	if err != nil {
		return "", err
	}

	tracks, err := parseCaptionTracks(string(page))
	if err != nil {
		return "", fmt.Errorf("video %s: %w", videoID, err)
	}

	track := pickTrack(tracks)
	raw, err := fetch(ctx, l.client, track.BaseURL, nil)
	if err != nil {
		return "", fmt.Errorf("video %s: fetching transcript: %w", videoID, err)
	}

	var t transcript
	if err := xml.Unmarshal(raw, &t); err != nil {
		return "", fmt.Errorf("video %s: parsing transcript: %w", videoID, err)
	}
	if len(t.Texts) == 0 {
		return "", fmt.Errorf("video %s: transcript is empty", videoID)
	}

	var out strings.Builder
	for _, line := range t.Texts {
		body := strings.TrimSpace(html.UnescapeString(line.Body))
		if body == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(body)
	}
	return out.String(), nil
}

// parseCaptionTracks pulls the captionTracks JSON array out of the watch
// page's embedded player response.
func parseCaptionTracks(page string) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx < 0 {
		return nil, fmt.Errorf("no captions available (transcript disabled or video unavailable)")
	}

	rest := page[idx+len(marker):]
	end := jsonArrayEnd(rest)
	if end < 0 {
		return nil, fmt.Errorf("malformed caption track data")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(rest[:end]), &tracks); err != nil {
		return nil, fmt.Errorf("decoding caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks listed")
	}
	return tracks, nil
}

// jsonArrayEnd returns the index one past the closing bracket of the JSON
// array at the start of s, accounting for strings and escapes.
func jsonArrayEnd(s string) int {
	if len(s) == 0 || s[0] != '[' {
		return -1
	}
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// pickTrack prefers manually-authored English captions, then any English,
// then the first track.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}
