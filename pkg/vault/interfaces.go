package vault

import (
	"context"
	"time"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package vault_test -source=interfaces.go

type Store interface {
	SaveTransaction(ctx context.Context, tx *database.Transaction) error
	ExistsByDedupKey(ctx context.Context, key string) (bool, error)
	ListTransactions(ctx context.Context) ([]*database.Transaction, error)
	AddMessages(ctx context.Context, messages []*database.Message) error
	GetMessagesSince(ctx context.Context, since time.Time) ([]*database.Message, error)
	Close() error
}

type Opener interface {
	Open(ctx context.Context, passphrase string) (Store, error)
	Destroy(ctx context.Context) error
}
