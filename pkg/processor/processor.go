package processor

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type Processor struct {
	cfg *Config
}

func NewProcessor(
	cfg *Config,
) *Processor {
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = defaultProgressEvery
	}

	if cfg.Clock == nil {
		cfg.Clock = common.SystemClock
	}

	return &Processor{
		cfg: cfg,
	}
}

// AddMessages stores raw messages in the vault inbox for a later scan.
func (p *Processor) AddMessages(
	ctx context.Context,
	messages []*database.Message,
) error {
	for _, m := range messages {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}

		if m.ReceivedAt.IsZero() {
			m.ReceivedAt = p.cfg.Clock()
		}
	}

	return p.cfg.Repo.AddMessages(ctx, messages)
}

// ScanAsync runs Scan on its own goroutine. The channel is closed when the scan ends,
// and nothing is delivered after ctx is cancelled.
func (p *Processor) ScanAsync(
	ctx context.Context,
	source MessageSource,
	daysBack int,
) <-chan database.ScanProgress {
	ch := make(chan database.ScanProgress, 1)

	go func() {
		defer close(ch)

		if err := p.Scan(ctx, source, daysBack, func(progress database.ScanProgress) {
			if ctx.Err() != nil {
				return
			}

			select {
			case ch <- progress:
			case <-ctx.Done():
			}
		}); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("scan failed")
		}
	}()

	return ch
}

// Scan walks the messages of the trailing daysBack window in arrival order. Per-message
// failures are counted and the scan goes on; only source or vault failures abort it.
func (p *Processor) Scan(
	ctx context.Context,
	source MessageSource,
	daysBack int,
	sink Sink,
) error {
	if sink == nil {
		sink = func(database.ScanProgress) {}
	}

	var progress database.ScanProgress

	if !p.cfg.Repo.IsUnlocked() {
		return p.abort(ctx, sink, progress, errors.WithStack(common.ErrVaultLocked))
	}

	messages, err := source.GetLatestMessages(ctx, daysBack)
	if err != nil {
		if !errors.Is(err, common.ErrVaultLocked) {
			err = errors.Mark(errors.Wrap(err, "failed to fetch messages"), common.ErrSourceUnavailable)
		}

		return p.abort(ctx, sink, progress, err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].ReceivedAt.Before(messages[j].ReceivedAt)
	})

	progress.TotalMessages = len(messages)

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("total", progress.TotalMessages).Int("days_back", daysBack).Msg("scan started")

	for _, msg := range messages {
		if err = cancelled(ctx, progress); err != nil {
			return err
		}

		processErr := p.processMessage(ctx, msg, &progress)
		progress.ScannedMessages++

		if processErr != nil {
			if err = cancelled(ctx, progress); err != nil {
				return err
			}

			return p.abort(ctx, sink, progress, processErr)
		}

		if progress.ScannedMessages%p.cfg.ProgressEvery == 0 && progress.ScannedMessages < progress.TotalMessages {
			if err = cancelled(ctx, progress); err != nil {
				return err
			}

			sink(progress)
		}
	}

	if err = cancelled(ctx, progress); err != nil {
		return err
	}

	progress.IsComplete = true
	sink(progress)

	logger.Info().
		Int("found", progress.TransactionsFound).
		Int("saved", progress.TransactionsSaved).
		Int("duplicates", progress.Duplicates).
		Int("parse_failures", progress.ParseFailures).
		Int("persistence_failures", progress.PersistenceFailures).
		Msg("scan finished")

	p.notify(ctx, progress)

	return nil
}

// cancelled reports a cancelled scan. Nothing is emitted once ctx is done.
func cancelled(ctx context.Context, progress database.ScanProgress) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		zerolog.Ctx(ctx).Warn().Int("scanned", progress.ScannedMessages).Msg("scan cancelled")

		return errors.WithStack(ctxErr)
	}

	return nil
}

func (p *Processor) processMessage(
	ctx context.Context,
	msg *database.Message,
	progress *database.ScanProgress,
) error {
	if msg == nil {
		progress.Ignored++
		return nil
	}

	logger := zerolog.Ctx(ctx).With().Str("message_id", msg.ID).Logger()

	res := p.cfg.Parser.Parse(msg.Body)

	switch res.Status {
	case database.ParseStatusIgnored:
		progress.Ignored++

		return nil
	case database.ParseStatusFailure:
		progress.ParseFailures++
		logger.Debug().Err(res.Err).Msg("failed to parse message")

		return nil
	case database.ParseStatusSuccess:
		progress.TransactionsFound++
	default:
		progress.ParseFailures++
		logger.Warn().Int32("status", int32(res.Status)).Msg("unexpected parse status")

		return nil
	}

	match := res.Match.WithCategory(p.cfg.Categorizer.Categorize(res.Match.MerchantRaw))

	key, isDuplicate, err := p.cfg.DuplicateCleaner.IsDuplicate(ctx, match, msg)
	if err != nil {
		if errors.Is(err, common.ErrVaultLocked) {
			return err
		}

		progress.PersistenceFailures++
		logger.Error().Err(err).Msg("failed to check duplicate")

		return nil
	}

	if isDuplicate {
		progress.Duplicates++

		return nil
	}

	tx := &database.Transaction{
		ID:              uuid.NewString(),
		Amount:          match.Amount,
		Currency:        match.Currency,
		Merchant:        match.MerchantRaw,
		Category:        match.Category,
		CardHandle:      match.AccountHandle,
		Type:            match.TransactionType,
		Timestamp:       msg.ReceivedAt,
		SourceMessageID: msg.ID,
		DedupKey:        key,
		CreatedAt:       p.cfg.Clock(),
	}

	if err = p.cfg.Repo.SaveTransaction(ctx, tx); err != nil {
		switch {
		case errors.Is(err, common.ErrVaultLocked):
			return err
		case errors.Is(err, common.ErrDuplicate):
			progress.Duplicates++
			p.cfg.DuplicateCleaner.MarkSeen(key)
		default:
			progress.PersistenceFailures++
			logger.Error().Err(err).Msg("failed to save transaction")
		}

		return nil
	}

	p.cfg.DuplicateCleaner.MarkSeen(key)
	progress.TransactionsSaved++

	return nil
}

func (p *Processor) abort(
	ctx context.Context,
	sink Sink,
	progress database.ScanProgress,
	err error,
) error {
	progress.IsComplete = true
	progress.Error = err.Error()

	zerolog.Ctx(ctx).Error().Err(err).Int("scanned", progress.ScannedMessages).Msg("scan aborted")

	sink(progress)
	p.notify(ctx, progress)

	return err
}

func (p *Processor) notify(ctx context.Context, progress database.ScanProgress) {
	if p.cfg.NotificationSvc == nil || p.cfg.Printer == nil || p.cfg.NotifyChatID == 0 {
		return
	}

	if err := p.cfg.NotificationSvc.SendMessage(ctx, p.cfg.NotifyChatID, p.cfg.Printer.Scan(progress)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to send scan summary")
	}
}
