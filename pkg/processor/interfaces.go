package processor

import (
	"context"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package processor_test -source=interfaces.go

type Repo interface {
	SaveTransaction(ctx context.Context, tx *database.Transaction) error
	AddMessages(ctx context.Context, messages []*database.Message) error
	IsUnlocked() bool
}

type MessageSource interface {
	GetLatestMessages(ctx context.Context, daysBack int) ([]*database.Message, error)
}

type Parser interface {
	Parse(body string) database.ParseResult
}

type Categorizer interface {
	Categorize(merchant string) database.Category
}

type DuplicateCleaner interface {
	IsDuplicate(
		ctx context.Context,
		match database.RawTransactionMatch,
		msg *database.Message,
	) (string, bool, error)
	MarkSeen(key string)
}

type Printer interface {
	Scan(progress database.ScanProgress) string
}

type NotificationSvc interface {
	SendMessage(
		ctx context.Context,
		chatID int64,
		text string,
	) error
}
