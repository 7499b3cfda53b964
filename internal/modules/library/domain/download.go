package domain

import (
	"time"

	mediaDomain "github.com/telewaves/telewaves/internal/modules/media/domain"
)

// Download records one media file kept in the library
type Download struct {
	ID           string                `json:"id"`
	MessageID    int                   `json:"message_id"`
	ChatID       int64                 `json:"chat_id"`
	Sender       string                `json:"sender,omitempty"`
	FileName     string                `json:"file_name"`
	Path         string                `json:"path"`
	Size         int64                 `json:"size"`
	MimeType     string                `json:"mime_type,omitempty"`
	Kind         mediaDomain.MediaKind `json:"kind"`
	DownloadedAt time.Time             `json:"downloaded_at"`
}
