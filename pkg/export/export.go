package export

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const FormatVersion = 1

type ImportResult struct {
	Total    int `json:"total"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

type Service struct {
	repo             Repo
	cipher           Cipher
	duplicateCleaner DuplicateCleaner
	clock            common.Clock
}

func NewService(
	repo Repo,
	cipher Cipher,
	duplicateCleaner DuplicateCleaner,
	clock common.Clock,
) *Service {
	if clock == nil {
		clock = common.SystemClock
	}

	return &Service{
		repo:             repo,
		cipher:           cipher,
		duplicateCleaner: duplicateCleaner,
		clock:            clock,
	}
}

// Export returns every stored transaction as an encrypted base64 blob.
func (s *Service) Export(ctx context.Context, password string) (string, error) {
	records, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return "", err
	}

	if records == nil {
		records = []*database.Transaction{}
	}

	payload, err := json.Marshal(database.ExportedData{
		Version:      FormatVersion,
		ExportedAt:   s.clock().UTC().Format(time.RFC3339),
		Transactions: records,
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	blob, err := s.cipher.Encrypt(payload, password)
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Info().Int("count", len(records)).Msg("transactions exported")

	return blob, nil
}

// Import decrypts a blob produced by Export and stores the transactions that are not already
// present. Nothing is stored when the blob cannot be decrypted or decoded.
func (s *Service) Import(ctx context.Context, blob string, password string) (ImportResult, error) {
	plain, err := s.cipher.Decrypt(blob, password)
	if err != nil {
		return ImportResult{}, err
	}

	var data database.ExportedData
	if err = json.Unmarshal(plain, &data); err != nil {
		return ImportResult{}, errors.Mark(errors.Wrap(err, "export payload is not valid json"), common.ErrDecryption)
	}

	if data.Version > FormatVersion {
		return ImportResult{}, errors.Newf("unsupported export version %d", data.Version)
	}

	result := ImportResult{Total: len(data.Transactions)}
	logger := zerolog.Ctx(ctx)

	for _, tx := range data.Transactions {
		if tx == nil {
			result.Failed++
			continue
		}

		s.normalize(tx)

		exists, existsErr := s.repo.ExistsByDedupKey(ctx, tx.DedupKey)
		if existsErr != nil {
			if errors.Is(existsErr, common.ErrVaultLocked) {
				return result, existsErr
			}

			result.Failed++
			logger.Error().Err(existsErr).Str("id", tx.ID).Msg("failed to check imported transaction")

			continue
		}

		if exists {
			result.Skipped++
			continue
		}

		if saveErr := s.repo.SaveTransaction(ctx, tx); saveErr != nil {
			switch {
			case errors.Is(saveErr, common.ErrVaultLocked):
				return result, saveErr
			case errors.Is(saveErr, common.ErrDuplicate):
				result.Skipped++
			default:
				result.Failed++
				logger.Error().Err(saveErr).Str("id", tx.ID).Msg("failed to save imported transaction")
			}

			continue
		}

		result.Imported++
	}

	logger.Info().
		Int("total", result.Total).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("import finished")

	return result, nil
}

func (s *Service) normalize(tx *database.Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	if tx.Currency == "" {
		tx.Currency = "INR"
	}

	if tx.DedupKey == "" {
		tx.DedupKey = s.duplicateCleaner.Key(database.RawTransactionMatch{
			Amount:        tx.Amount,
			AccountHandle: tx.CardHandle,
			MerchantRaw:   tx.Merchant,
		}, tx.Timestamp)
	}
}
