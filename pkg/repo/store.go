package repo

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const messageBatchSize = 100

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) SaveTransaction(ctx context.Context, tx *database.Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	tx.Timestamp = tx.Timestamp.UTC()

	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		if isDuplicateErr(err) {
			return errors.Mark(errors.Wrapf(err, "dedup key %s already stored", tx.DedupKey), common.ErrDuplicate)
		}

		return errors.Mark(errors.Wrap(err, "failed to save transaction"), common.ErrPersistence)
	}

	return nil
}

func (s *Store) ExistsByDedupKey(ctx context.Context, key string) (bool, error) {
	var count int64

	if err := s.db.WithContext(ctx).
		Model(&database.Transaction{}).
		Where("dedup_key = ?", key).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to lookup dedup key")
	}

	return count > 0, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]*database.Transaction, error) {
	var records []*database.Transaction

	if err := s.db.WithContext(ctx).Order("timestamp asc").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch transactions")
	}

	return records, nil
}

func (s *Store) AddMessages(ctx context.Context, messages []*database.Message) error {
	if len(messages) == 0 {
		return nil
	}

	for _, m := range messages {
		m.ReceivedAt = m.ReceivedAt.UTC()
	}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(messages, messageBatchSize).Error; err != nil {
		return errors.Wrap(err, "failed to add messages")
	}

	return nil
}

func (s *Store) GetMessagesSince(ctx context.Context, since time.Time) ([]*database.Message, error) {
	var items []*database.Message

	if err := s.db.WithContext(ctx).
		Where("received_at >= ?", since.UTC()).
		Order("received_at asc").
		Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch messages")
	}

	return items, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	return sqlDB.Close()
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	lower := strings.ToLower(err.Error())

	return strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key")
}
