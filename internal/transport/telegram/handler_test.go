package telegram

import (
	"testing"

	"github.com/gotd/td/tg"
)

func testUser(id int64, username string) *tg.User {
	user := &tg.User{ID: id}
	if username != "" {
		user.SetUsername(username)
	}
	return user
}

func testDocumentMedia(attrs ...tg.DocumentAttributeClass) *tg.MessageMediaDocument {
	media := &tg.MessageMediaDocument{}
	media.SetDocument(&tg.Document{
		ID:            111,
		AccessHash:    222,
		FileReference: []byte{0x01},
		MimeType:      "audio/mpeg",
		Size:          2048,
		Attributes:    attrs,
	})
	return media
}

func TestPeerChatID(t *testing.T) {
	tests := []struct {
		name string
		peer tg.PeerClass
		want int64
	}{
		{name: "user", peer: &tg.PeerUser{UserID: 42}, want: 42},
		{name: "legacy group", peer: &tg.PeerChat{ChatID: 99}, want: -99},
		{name: "channel", peer: &tg.PeerChannel{ChannelID: 1234}, want: -1_000_000_001_234},
		{name: "unknown", peer: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := peerChatID(tt.peer); got != tt.want {
				t.Errorf("peerChatID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveSenderFromID(t *testing.T) {
	msg := &tg.Message{PeerID: &tg.PeerChat{ChatID: 5}}
	msg.SetFromID(&tg.PeerUser{UserID: 777})
	entities := tg.Entities{Users: map[int64]*tg.User{777: testUser(777, "alice")}}

	sender := resolveSender(msg, entities)
	if sender.ID != 777 {
		t.Errorf("sender.ID = %d, want 777", sender.ID)
	}
	if sender.Username != "alice" {
		t.Errorf("sender.Username = %q, want %q", sender.Username, "alice")
	}
}

func TestResolveSenderPeerFallback(t *testing.T) {
	// Direct chats often omit from_id, the peer is the sender
	msg := &tg.Message{PeerID: &tg.PeerUser{UserID: 555}}

	sender := resolveSender(msg, tg.Entities{})
	if sender.ID != 555 {
		t.Errorf("sender.ID = %d, want 555", sender.ID)
	}
	if sender.Username != "" {
		t.Errorf("sender.Username = %q, want empty", sender.Username)
	}
}

func TestResolveSenderUnknown(t *testing.T) {
	msg := &tg.Message{PeerID: &tg.PeerChat{ChatID: 5}}

	sender := resolveSender(msg, tg.Entities{})
	if sender.ID != 0 || sender.Ref() != "" {
		t.Errorf("expected empty sender, got %+v", sender)
	}
}

func TestDocumentFromMediaSkipsOtherKinds(t *testing.T) {
	tests := []struct {
		name  string
		media tg.MessageMediaClass
	}{
		{name: "photo", media: &tg.MessageMediaPhoto{}},
		{name: "geo", media: &tg.MessageMediaGeo{}},
		{name: "document without payload", media: &tg.MessageMediaDocument{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentFromMedia(tt.media); got != nil {
				t.Errorf("documentFromMedia() = %+v, want nil", got)
			}
		})
	}
}

func TestDocumentFromMediaAttributes(t *testing.T) {
	media := testDocumentMedia(
		&tg.DocumentAttributeFilename{FileName: "song.mp3"},
		&tg.DocumentAttributeAudio{Voice: true},
	)

	doc := documentFromMedia(media)
	if doc == nil {
		t.Fatal("expected a document")
	}
	if doc.ID != 111 || doc.AccessHash != 222 {
		t.Errorf("location fields = (%d, %d), want (111, 222)", doc.ID, doc.AccessHash)
	}
	if doc.DeclaredName != "song.mp3" {
		t.Errorf("DeclaredName = %q, want %q", doc.DeclaredName, "song.mp3")
	}
	if !doc.Audio || !doc.Voice {
		t.Errorf("Audio = %v, Voice = %v, want both true", doc.Audio, doc.Voice)
	}
	if doc.Video {
		t.Error("Video should be false for an audio attachment")
	}
}

func TestDocumentFromMediaFirstFilenameWins(t *testing.T) {
	media := testDocumentMedia(
		&tg.DocumentAttributeFilename{FileName: "first.mp3"},
		&tg.DocumentAttributeFilename{FileName: "second.mp3"},
	)

	doc := documentFromMedia(media)
	if doc == nil {
		t.Fatal("expected a document")
	}
	if doc.DeclaredName != "first.mp3" {
		t.Errorf("DeclaredName = %q, want %q", doc.DeclaredName, "first.mp3")
	}
}

func TestMapMessage(t *testing.T) {
	msg := &tg.Message{
		ID:     10,
		PeerID: &tg.PeerChannel{ChannelID: 77},
		Media:  testDocumentMedia(&tg.DocumentAttributeVideo{}),
	}
	msg.SetFromID(&tg.PeerUser{UserID: 900})
	entities := tg.Entities{Users: map[int64]*tg.User{900: testUser(900, "uploader")}}

	incoming := mapMessage(msg, entities)
	if incoming.ID != 10 {
		t.Errorf("ID = %d, want 10", incoming.ID)
	}
	if incoming.ChatID != -1_000_000_000_077 {
		t.Errorf("ChatID = %d, want -1000000000077", incoming.ChatID)
	}
	if incoming.Sender.Ref() != "@uploader" {
		t.Errorf("Sender.Ref() = %q, want %q", incoming.Sender.Ref(), "@uploader")
	}
	if incoming.Document == nil || !incoming.Document.Video {
		t.Errorf("Document = %+v, want video document", incoming.Document)
	}
}
