package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/telegram/updates"
	"github.com/gotd/td/tg"
	"github.com/samber/oops"
	"go.uber.org/zap"

	mediaDomain "github.com/telewaves/telewaves/internal/modules/media/domain"
	"github.com/telewaves/telewaves/internal/shared/config"
	sharedErrors "github.com/telewaves/telewaves/internal/shared/errors"
)

// Client owns the MTProto session, the update manager and the file
// downloader. The network connection only exists inside Run and is torn
// down on every exit path.
type Client struct {
	cfg        *config.Config
	client     *telegram.Client
	manager    *updates.Manager
	downloader *downloader.Downloader
	logger     *slog.Logger
}

// New creates a new Telegram client with the handler subscribed to
// incoming message updates.
func New(cfg *config.Config, handler *Handler, zapLogger *zap.Logger, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher := tg.NewUpdateDispatcher()
	handler.Register(dispatcher)

	manager := updates.New(updates.Config{
		Handler: dispatcher,
		Logger:  zapLogger.Named("updates"),
	})

	client := telegram.NewClient(cfg.TelegramAPIID, cfg.TelegramAPIHash, telegram.Options{
		Logger:         zapLogger,
		SessionStorage: &telegram.FileSessionStorage{Path: cfg.SessionPath()},
		UpdateHandler:  manager,
	})

	return &Client{
		cfg:        cfg,
		client:     client,
		manager:    manager,
		downloader: downloader.NewDownloader(),
		logger:     logger,
	}
}

// Run connects, authenticates and consumes updates until ctx is canceled
// or the connection fails.
func (c *Client) Run(ctx context.Context) error {
	err := c.client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(terminalAuth{phone: c.cfg.TelegramPhone}, auth.SendCodeOptions{})
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			if errors.Is(err, io.EOF) {
				c.logger.Error("Authentication needs an interactive terminal, run once in the foreground to create the session",
					"session", c.cfg.SessionPath())
			}
			return oops.With("session", c.cfg.SessionPath(), "context", "authentication failed").Wrap(err)
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return oops.With("context", "resolving own account").Wrap(err)
		}
		c.logger.Info("Logged in as",
			"first_name", self.FirstName,
			"username", self.Username,
			"user_id", self.ID)

		return c.manager.Run(ctx, c.client.API(), self.ID, updates.AuthOptions{
			IsBot: self.Bot,
		})
	})
	if err != nil && ctx.Err() == nil && looksLikeAuthError(err) {
		c.logger.Error("Telegram client stopped, check API credentials and session state",
			"session", c.cfg.SessionPath(),
			"error", err)
	}
	return err
}

// DownloadDocument transfers a document's bytes to path and returns the
// path written. Partial files are removed on failure.
func (c *Client) DownloadDocument(ctx context.Context, doc mediaDomain.Document, path string) (string, error) {
	if doc.ID == 0 {
		return "", sharedErrors.ErrEmptyDocument
	}

	location := &tg.InputDocumentFileLocation{
		ID:            doc.ID,
		AccessHash:    doc.AccessHash,
		FileReference: doc.FileReference,
	}

	if _, err := c.downloader.Download(c.client.API(), location).ToPath(ctx, path); err != nil {
		_ = os.Remove(path)
		return "", oops.With("path", path, "document_id", doc.ID).Wrap(err)
	}
	return path, nil
}

func looksLikeAuthError(err error) bool {
	lowered := strings.ToLower(err.Error())
	return strings.Contains(lowered, "auth") || strings.Contains(lowered, "phone")
}
