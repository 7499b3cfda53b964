package service

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"
	"github.com/samber/oops"
	libraryDomain "github.com/telewaves/telewaves/internal/modules/library/domain"
	libraryService "github.com/telewaves/telewaves/internal/modules/library/service"
)

// Service handles RSS feed generation for the download journal
type Service struct {
	library *libraryService.Service
}

// New creates a new feed service
func New(library *libraryService.Service) *Service {
	return &Service{
		library: library,
	}
}

// GenerateFeed builds an RSS feed of the most recent downloads
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	downloads, err := s.library.GetDownloads(50) // Last 50 downloads
	if err != nil {
		return nil, oops.With("context", "failed to get downloads").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "Telewaves Media Library",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feed", baseURL)},
		Description: "Media files downloaded from monitored Telegram chats",
	}
	if len(downloads) > 0 {
		feed.Updated = downloads[0].DownloadedAt
	}

	feed.Items = lo.Map(downloads, func(download *libraryDomain.Download, _ int) *feeds.Item {
		return s.downloadToFeedItem(download, baseURL)
	})

	return feed, nil
}

func (s *Service) downloadToFeedItem(download *libraryDomain.Download, baseURL string) *feeds.Item {
	link := fmt.Sprintf("%s/library/%s", baseURL, url.PathEscape(download.FileName))

	description := fmt.Sprintf("%s (%s, %.1f MB) from chat %d",
		download.FileName, download.Kind, float64(download.Size)/(1024*1024), download.ChatID)
	if download.Sender != "" {
		description += fmt.Sprintf(", sent by %s", download.Sender)
	}

	item := &feeds.Item{
		Title:       download.FileName,
		Link:        &feeds.Link{Href: link},
		Description: description,
		Created:     download.DownloadedAt,
		Id:          download.ID,
	}
	if download.Sender != "" {
		item.Author = &feeds.Author{Name: download.Sender}
	}
	if download.MimeType != "" {
		item.Enclosure = &feeds.Enclosure{
			Url:    link,
			Length: strconv.FormatInt(download.Size, 10),
			Type:   download.MimeType,
		}
	}

	return item
}
