package repository

import (
	"time"

	"github.com/telewaves/telewaves/internal/modules/library/domain"
)

// Repository defines the interface for download journal persistence
type Repository interface {
	SaveDownload(download *domain.Download) error
	GetDownloads(limit int) ([]*domain.Download, error)
	GetDownloadsSince(since time.Time) ([]*domain.Download, error)
}
