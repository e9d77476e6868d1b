package export

import (
	"context"
	"time"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package export_test -source=interfaces.go

type Repo interface {
	ListTransactions(ctx context.Context) ([]*database.Transaction, error)
	SaveTransaction(ctx context.Context, tx *database.Transaction) error
	ExistsByDedupKey(ctx context.Context, key string) (bool, error)
}

type Cipher interface {
	Encrypt(plaintext []byte, password string) (string, error)
	Decrypt(blob string, password string) ([]byte, error)
}

type DuplicateCleaner interface {
	Key(match database.RawTransactionMatch, receivedAt time.Time) string
}
