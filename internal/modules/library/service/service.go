package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/telewaves/telewaves/internal/modules/library/domain"
	"github.com/telewaves/telewaves/internal/modules/library/repository"
)

// Service handles download journal business logic
type Service struct {
	repo repository.Repository
}

// New creates a new library service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordDownload journals a kept file, assigning an id and timestamp when
// the caller left them unset
func (s *Service) RecordDownload(download *domain.Download) error {
	if download.ID == "" {
		download.ID = uuid.NewString()
	}
	if download.DownloadedAt.IsZero() {
		download.DownloadedAt = time.Now().UTC()
	}

	return s.repo.SaveDownload(download)
}

// GetDownloads retrieves the most recent downloads
func (s *Service) GetDownloads(limit int) ([]*domain.Download, error) {
	return s.repo.GetDownloads(limit)
}

// GetDownloadsSince retrieves downloads recorded after the given time
func (s *Service) GetDownloadsSince(since time.Time) ([]*domain.Download, error) {
	return s.repo.GetDownloadsSince(since)
}
