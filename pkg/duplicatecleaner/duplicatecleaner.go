package duplicatecleaner

import (
	"context"
	"crypto/sha512"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type DuplicateCleaner struct {
	repo Repo

	mut  sync.Mutex
	seen map[string]struct{}
}

func NewDuplicateCleaner(
	repo Repo,
) *DuplicateCleaner {
	return &DuplicateCleaner{
		repo: repo,
		seen: map[string]struct{}{},
	}
}

// Key buckets the message time to the minute so the same alert delivered twice collapses to one key.
func (d *DuplicateCleaner) Key(match database.RawTransactionMatch, receivedAt time.Time) string {
	return d.HashKey(fmt.Sprintf("%s|%s|%s|%s",
		match.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(match.MerchantRaw)),
		match.AccountHandle,
		receivedAt.UTC().Truncate(time.Minute).Format(time.RFC3339),
	))
}

func (d *DuplicateCleaner) IsDuplicate(
	ctx context.Context,
	match database.RawTransactionMatch,
	msg *database.Message,
) (string, bool, error) {
	if msg == nil {
		return "", false, errors.New("message is required for dedup")
	}

	key := d.Key(match, msg.ReceivedAt)

	d.mut.Lock()
	_, ok := d.seen[key]
	d.mut.Unlock()

	if ok {
		zerolog.Ctx(ctx).Debug().Str("message_id", msg.ID).Msg("duplicate within session")

		return key, true, nil
	}

	exists, err := d.repo.ExistsByDedupKey(ctx, key)
	if err != nil {
		return key, false, err
	}

	if exists {
		zerolog.Ctx(ctx).Debug().Str("message_id", msg.ID).Msg("duplicate in persisted history")
		d.MarkSeen(key)
	}

	return key, exists, nil
}

func (d *DuplicateCleaner) MarkSeen(key string) {
	if key == "" {
		return
	}

	d.mut.Lock()
	defer d.mut.Unlock()

	d.seen[key] = struct{}{}
}

// Reset starts a new import epoch.
func (d *DuplicateCleaner) Reset() {
	d.mut.Lock()
	defer d.mut.Unlock()

	d.seen = map[string]struct{}{}
}

func (d *DuplicateCleaner) HashKey(bv string) string {
	shaImpl := sha512.New()
	shaImpl.Write([]byte(bv))

	return fmt.Sprintf("%x", shaImpl.Sum(nil))
}
