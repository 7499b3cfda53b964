package service

import (
	"testing"
	"time"

	"github.com/telewaves/telewaves/internal/modules/library/domain"
)

type stubRepo struct {
	saved []*domain.Download
}

func (r *stubRepo) SaveDownload(d *domain.Download) error { r.saved = append(r.saved, d); return nil }

func (r *stubRepo) GetDownloads(limit int) ([]*domain.Download, error) { return r.saved, nil }

func (r *stubRepo) GetDownloadsSince(since time.Time) ([]*domain.Download, error) {
	return r.saved, nil
}

func TestRecordDownloadAssignsIDAndTimestamp(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if err := svc.RecordDownload(&domain.Download{FileName: "track.mp3"}); err != nil {
		t.Fatalf("RecordDownload: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(repo.saved))
	}
	rec := repo.saved[0]
	if rec.ID == "" {
		t.Error("expected an assigned id")
	}
	if rec.DownloadedAt.IsZero() {
		t.Error("expected an assigned timestamp")
	}
}

func TestRecordDownloadKeepsCallerValues(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := svc.RecordDownload(&domain.Download{ID: "fixed", DownloadedAt: at}); err != nil {
		t.Fatalf("RecordDownload: %v", err)
	}

	if repo.saved[0].ID != "fixed" {
		t.Errorf("ID = %q, want %q", repo.saved[0].ID, "fixed")
	}
	if !repo.saved[0].DownloadedAt.Equal(at) {
		t.Errorf("DownloadedAt = %v, want %v", repo.saved[0].DownloadedAt, at)
	}
}
