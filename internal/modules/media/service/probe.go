package service

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// probeAudioTags reads the ID3 artist and title from an mp3 file, best
// effort. Anything other than a readable tagged mp3 reports no tags.
func probeAudioTags(path string) (artist, title string, ok bool) {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return "", "", false
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", "", false
	}
	defer tag.Close()

	artist = tag.Artist()
	title = tag.Title()
	if artist == "" && title == "" {
		return "", "", false
	}

	return artist, title, true
}
