package domain

import "strconv"

// Message is the read-only view of an incoming message notification.
// Document is nil when the message carries no downloadable attachment.
type Message struct {
	ID       int
	ChatID   int64
	Sender   Sender
	Document *Document
}

// Sender identifies who sent a message, when known.
type Sender struct {
	ID       int64
	Username string
}

// Ref returns the sender's "@handle" when a username exists, the numeric
// id as a string otherwise, or "" for the zero Sender. Case normalization
// is left to the chat filter.
func (s Sender) Ref() string {
	if s.Username != "" {
		return "@" + s.Username
	}
	if s.ID != 0 {
		return strconv.FormatInt(s.ID, 10)
	}

	return ""
}
