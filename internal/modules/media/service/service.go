package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	filterDomain "github.com/telewaves/telewaves/internal/modules/filter/domain"
	libraryDomain "github.com/telewaves/telewaves/internal/modules/library/domain"
	libraryService "github.com/telewaves/telewaves/internal/modules/library/service"
	"github.com/telewaves/telewaves/internal/modules/media/domain"
	"github.com/telewaves/telewaves/internal/shared/fsutil"
)

// Downloader transfers a document's bytes to a local path and returns the
// path actually written.
type Downloader interface {
	DownloadDocument(ctx context.Context, doc domain.Document, path string) (string, error)
}

// Service runs incoming messages through the chat and extension filters
// and downloads the attachments that pass
type Service struct {
	chats       *filterDomain.ChatFilter
	extensions  *filterDomain.ExtensionFilter
	library     *libraryService.Service
	downloader  Downloader
	downloadDir string
	logger      *slog.Logger
}

// New creates a new media service. The downloader is wired separately via
// SetDownloader because the transport client needs this service for its
// message handler.
func New(chats *filterDomain.ChatFilter, extensions *filterDomain.ExtensionFilter, library *libraryService.Service, downloadDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		chats:       chats,
		extensions:  extensions,
		library:     library,
		downloadDir: downloadDir,
		logger:      logger,
	}
}

// SetDownloader wires the byte-transfer dependency
func (s *Service) SetDownloader(d Downloader) {
	s.downloader = d
}

// Process runs one message through the filter and download pipeline.
// Policy rejections and download failures are logged and swallowed so the
// message loop always survives; only infrastructure failures surface.
func (s *Service) Process(ctx context.Context, msg domain.Message) error {
	if msg.Document == nil {
		return nil
	}

	sender := msg.Sender.Ref()
	if !s.chats.ShouldProcess(msg.ChatID, sender) {
		s.logger.Debug("Skipping message from filtered chat", "chat_id", msg.ChatID, "sender", sender)
		return nil
	}

	fileName := msg.Document.FileName()
	if !s.extensions.Allows(fileName) {
		s.logger.Debug("Skipping file with filtered extension", "file_name", fileName)
		return nil
	}

	if s.downloader == nil {
		return oops.Errorf("media service has no downloader wired")
	}

	target := fsutil.UniquePath(s.downloadDir, fsutil.SanitizeFileName(fileName))
	s.logger.Info("Downloading media file", "file_name", fileName, "chat_id", msg.ChatID, "sender", sender)

	saved, err := s.downloader.DownloadDocument(ctx, *msg.Document, target)
	if err != nil {
		s.logger.Error("Failed to download media file", "file_name", fileName, "chat_id", msg.ChatID, "error", err)
		return nil
	}

	// The transfer may settle on a different final name; re-check it
	if !s.extensions.Allows(saved) {
		s.logger.Warn("Downloaded file failed the extension filter, removing it", "path", saved)
		if err := os.Remove(saved); err != nil {
			s.logger.Warn("Failed to remove rejected file", "path", saved, "error", err)
		}
		return nil
	}

	var size int64
	if info, err := os.Stat(saved); err == nil {
		size = info.Size()
	}

	logAttrs := []any{"path", saved, "size_mb", fmt.Sprintf("%.1f", float64(size)/(1024*1024))}
	if artist, title, ok := probeAudioTags(saved); ok {
		logAttrs = append(logAttrs, "artist", artist, "title", title)
	}
	s.logger.Info("Downloaded media file", logAttrs...)

	record := &libraryDomain.Download{
		MessageID: msg.ID,
		ChatID:    msg.ChatID,
		Sender:    sender,
		FileName:  filepath.Base(saved),
		Path:      saved,
		Size:      size,
		MimeType:  msg.Document.MimeType,
		Kind:      msg.Document.Kind(),
	}
	if err := s.library.RecordDownload(record); err != nil {
		return oops.With("path", saved, "context", "failed to journal download").Wrap(err)
	}

	return nil
}
