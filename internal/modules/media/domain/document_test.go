package domain

import "testing"

func TestDocumentFileName(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"declared name wins", Document{ID: 1, DeclaredName: "song.mp3", MimeType: "audio/flac"}, "song.mp3"},
		{"flac fallback", Document{ID: 123, MimeType: "audio/flac"}, "document_123.flac"},
		{"mp3 fallback", Document{ID: 7, MimeType: "audio/mpeg"}, "document_7.mp3"},
		{"m4a fallback", Document{ID: 8, MimeType: "audio/mp4"}, "document_8.m4a"},
		{"video fallback", Document{ID: 9, MimeType: "video/mp4"}, "document_9.mp4"},
		{"unmapped mime gets no extension", Document{ID: 10, MimeType: "application/zip"}, "document_10"},
		{"empty mime gets no extension", Document{ID: 11}, "document_11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.FileName(); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentKind(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want MediaKind
	}{
		{"audio attribute", Document{Audio: true, MimeType: "application/octet-stream"}, MediaKindAudio},
		{"video attribute", Document{Video: true}, MediaKindVideo},
		{"audio mime prefix", Document{MimeType: "audio/ogg"}, MediaKindAudio},
		{"video mime prefix", Document{MimeType: "video/webm"}, MediaKindVideo},
		{"plain document", Document{MimeType: "application/pdf"}, MediaKindDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSenderRef(t *testing.T) {
	tests := []struct {
		name   string
		sender Sender
		want   string
	}{
		{"username preferred", Sender{ID: 555, Username: "Alice"}, "@Alice"},
		{"numeric fallback", Sender{ID: 555}, "555"},
		{"zero sender", Sender{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sender.Ref(); got != tt.want {
				t.Errorf("Ref() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMediaKindNoCase(t *testing.T) {
	kind, err := ParseMediaKind("Audio")
	if err != nil {
		t.Fatalf("ParseMediaKind: %v", err)
	}
	if kind != MediaKindAudio {
		t.Errorf("ParseMediaKind(\"Audio\") = %v, want %v", kind, MediaKindAudio)
	}

	if _, err := ParseMediaKind("bogus"); err == nil {
		t.Error("expected error for unknown media kind")
	}
}
