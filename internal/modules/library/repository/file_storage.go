package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samber/oops"
	"github.com/telewaves/telewaves/internal/modules/library/domain"
)

// FileStorage implements library.Repository using the file system
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based download journal
func NewFileStorage(basePath string) (Repository, error) {
	downloadPath := filepath.Join(basePath, "downloads")
	if err := os.MkdirAll(downloadPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create downloads directory").Wrap(err)
	}

	return &FileStorage{basePath: downloadPath}, nil
}

func (s *FileStorage) SaveDownload(download *domain.Download) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.basePath, fmt.Sprintf("%s.json", download.ID))
	data, err := json.MarshalIndent(download, "", "  ")
	if err != nil {
		return oops.With("download_id", download.ID, "context", "failed to marshal download record").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *FileStorage) GetDownloads(limit int) ([]*domain.Download, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	downloads, err := s.readAll()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(downloads) > limit {
		downloads = downloads[:limit]
	}

	return downloads, nil
}

func (s *FileStorage) GetDownloadsSince(since time.Time) ([]*domain.Download, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	downloads, err := s.readAll()
	if err != nil {
		return nil, err
	}

	var recent []*domain.Download
	for _, download := range downloads {
		if download.DownloadedAt.After(since) {
			recent = append(recent, download)
		}
	}

	return recent, nil
}

// readAll loads every journal record, newest first. Unreadable entries are
// skipped.
func (s *FileStorage) readAll() ([]*domain.Download, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Download{}, nil
		}
		return nil, oops.With("downloads_dir", s.basePath, "context", "failed to read downloads directory").Wrap(err)
	}

	var downloads []*domain.Download
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			continue
		}

		var download domain.Download
		if err := json.Unmarshal(data, &download); err != nil {
			continue
		}

		downloads = append(downloads, &download)
	}

	sort.Slice(downloads, func(i, j int) bool {
		return downloads[i].DownloadedAt.After(downloads[j].DownloadedAt)
	})

	return downloads, nil
}
