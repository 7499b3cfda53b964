package di

import (
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"go.uber.org/zap"

	feedService "github.com/telewaves/telewaves/internal/modules/feed/service"
	filterDomain "github.com/telewaves/telewaves/internal/modules/filter/domain"
	libraryRepo "github.com/telewaves/telewaves/internal/modules/library/repository"
	libraryService "github.com/telewaves/telewaves/internal/modules/library/service"
	mediaService "github.com/telewaves/telewaves/internal/modules/media/service"
	"github.com/telewaves/telewaves/internal/shared/config"
	httpServer "github.com/telewaves/telewaves/internal/transport/http"
	telegramClient "github.com/telewaves/telewaves/internal/transport/telegram"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register the protocol logger. gotd is chatty, so it stays silent
	// unless debug output is requested.
	do.Provide(injector, func(i do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.TelegramDebug {
			return zap.NewNop(), nil
		}
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, oops.With("context", "failed to build debug logger").Wrap(err)
		}
		return logger, nil
	})

	// Register Library Repository
	do.Provide(injector, func(i do.Injector) (libraryRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := libraryRepo.NewFileStorage(cfg.DataDir)
		if err != nil {
			return nil, oops.With("data_dir", cfg.DataDir, "context", "failed to initialize library repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Library Service
	do.Provide(injector, func(i do.Injector) (*libraryService.Service, error) {
		repo := do.MustInvoke[libraryRepo.Repository](i)
		return libraryService.New(repo), nil
	})

	// Register Chat Filter
	do.Provide(injector, func(i do.Injector) (*filterDomain.ChatFilter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return filterDomain.NewChatFilter(cfg.ChatFilter), nil
	})

	// Register Extension Filter
	do.Provide(injector, func(i do.Injector) (*filterDomain.ExtensionFilter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return filterDomain.NewExtensionFilter(cfg.ExtensionsFilter, slog.Default()), nil
	})

	// Register Media Service
	do.Provide(injector, func(i do.Injector) (*mediaService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		chats := do.MustInvoke[*filterDomain.ChatFilter](i)
		extensions := do.MustInvoke[*filterDomain.ExtensionFilter](i)
		library := do.MustInvoke[*libraryService.Service](i)
		return mediaService.New(chats, extensions, library, cfg.DownloadDir, slog.Default()), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		library := do.MustInvoke[*libraryService.Service](i)
		return feedService.New(library), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramClient.Handler, error) {
		processor := do.MustInvoke[*mediaService.Service](i)
		return telegramClient.NewHandler(processor, slog.Default()), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feedSvc := do.MustInvoke[*feedService.Service](i)
		library := do.MustInvoke[*libraryService.Service](i)
		server := httpServer.New(cfg, feedSvc, library)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Telegram Client (needs the handler ready, and the media
	// service downloads through it)
	do.Provide(injector, func(i do.Injector) (*telegramClient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramClient.Handler](i)
		zapLogger := do.MustInvoke[*zap.Logger](i)

		client := telegramClient.New(cfg, handler, zapLogger, slog.Default())

		processor := do.MustInvoke[*mediaService.Service](i)
		processor.SetDownloader(client)

		return client, nil
	})

	return injector, nil
}

// Shutdown gracefully releases container-held resources
func Shutdown(injector do.Injector) error {
	if logger, err := do.Invoke[*zap.Logger](injector); err == nil && logger != nil {
		_ = logger.Sync()
	}
	return nil
}
