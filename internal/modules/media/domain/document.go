package domain

import (
	"fmt"
	"strings"
)

// mimeExtensions maps common audio and video MIME types to the extension
// appended when a document declares no file name.
var mimeExtensions = map[string]string{
	"audio/mpeg": ".mp3",
	"audio/mp4":  ".m4a",
	"audio/flac": ".flac",
	"audio/ogg":  ".ogg",
	"audio/wav":  ".wav",
	"video/mp4":  ".mp4",
}

// Document is the read-only view of a file attachment carried by an
// incoming message. ID, AccessHash and FileReference identify the remote
// content for the byte transfer.
type Document struct {
	ID            int64
	AccessHash    int64
	FileReference []byte
	MimeType      string
	Size          int64
	DeclaredName  string
	Audio         bool
	Video         bool
	Voice         bool
}

// FileName returns the document's declared name when it has one, otherwise
// a synthesized "document_<id>" name with an extension guessed from the
// MIME type. Unmapped MIME types get no extension.
func (d Document) FileName() string {
	if d.DeclaredName != "" {
		return d.DeclaredName
	}

	name := fmt.Sprintf("document_%d", d.ID)
	if ext, ok := mimeExtensions[d.MimeType]; ok {
		name += ext
	}

	return name
}

// Kind classifies the document from its declared attributes, falling back
// to the MIME type prefix.
func (d Document) Kind() MediaKind {
	switch {
	case d.Audio:
		return MediaKindAudio
	case d.Video:
		return MediaKindVideo
	case strings.HasPrefix(d.MimeType, "audio/"):
		return MediaKindAudio
	case strings.HasPrefix(d.MimeType, "video/"):
		return MediaKindVideo
	}

	return MediaKindDocument
}
