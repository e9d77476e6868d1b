package app

import (
	"context"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/categorizer"
	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/config"
	"github.com/skynet2/ogwallet-vault/pkg/duplicatecleaner"
	"github.com/skynet2/ogwallet-vault/pkg/export"
	"github.com/skynet2/ogwallet-vault/pkg/notifications"
	"github.com/skynet2/ogwallet-vault/pkg/parser"
	"github.com/skynet2/ogwallet-vault/pkg/payloadcipher"
	"github.com/skynet2/ogwallet-vault/pkg/printer"
	"github.com/skynet2/ogwallet-vault/pkg/processor"
	"github.com/skynet2/ogwallet-vault/pkg/repo"
	"github.com/skynet2/ogwallet-vault/pkg/vault"
)

type App struct {
	Config           *config.Config
	Session          *vault.Session
	Processor        *processor.Processor
	Export           *export.Service
	Printer          *printer.Printer
	DuplicateCleaner *duplicatecleaner.DuplicateCleaner
	Telegram         *notifications.Telegram
}

// storeOpener narrows repo.Opener to the vault.Opener contract.
type storeOpener struct {
	*repo.Opener
}

func (o storeOpener) Open(ctx context.Context, passphrase string) (vault.Store, error) {
	store, err := o.Opener.Open(ctx, passphrase)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// New builds every component from cfg. The vault starts locked.
func New(cfg *config.Config, clock common.Clock) (*App, error) {
	if clock == nil {
		clock = common.SystemClock
	}

	cipher := payloadcipher.NewCipher()

	opener, err := repo.NewOpener(cfg.StoreDriver, cfg.VaultPath, cfg.PostgresDSN, cipher)
	if err != nil {
		return nil, err
	}

	var rules []categorizer.Rule

	if cfg.CategoriesFile != "" {
		if rules, err = categorizer.LoadRules(cfg.CategoriesFile); err != nil {
			return nil, err
		}
	}

	session := vault.NewSession(storeOpener{opener}, clock)
	dupCleaner := duplicatecleaner.NewDuplicateCleaner(session)
	pr := printer.NewPrinter()

	a := &App{
		Config:           cfg,
		Session:          session,
		Export:           export.NewService(session, cipher, dupCleaner, clock),
		Printer:          pr,
		DuplicateCleaner: dupCleaner,
	}

	procCfg := &processor.Config{
		Repo:             session,
		Parser:           parser.NewParser(),
		Categorizer:      categorizer.NewCategorizer(rules),
		DuplicateCleaner: dupCleaner,
		Printer:          pr,
		ProgressEvery:    cfg.ScanProgress,
		Clock:            clock,
	}

	if cfg.TelegramEnabled() {
		a.Telegram = notifications.NewTelegram(cfg.TelegramBotToken, req.DefaultClient())

		procCfg.NotificationSvc = a.Telegram
		procCfg.NotifyChatID = cfg.TelegramChatID
	}

	a.Processor = processor.NewProcessor(procCfg)

	return a, nil
}

// Unlock opens the vault and starts a fresh dedup epoch.
func (a *App) Unlock(ctx context.Context, passphrase string) error {
	if err := a.Session.Unlock(ctx, passphrase); err != nil {
		return err
	}

	a.DuplicateCleaner.Reset()

	zerolog.Ctx(ctx).Info().Str("driver", a.Config.StoreDriver).Msg("vault ready")

	return nil
}

func (a *App) Close(ctx context.Context) {
	a.Session.Close(ctx)
}
