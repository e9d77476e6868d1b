package source

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type smsRow struct {
	ID      string `csv:"id"`
	Address string `csv:"address"`
	Body    string `csv:"body"`
	Date    int64  `csv:"date"`
}

// SMSBackup reads a device inbox exported as CSV with columns id,address,body,date (epoch millis).
type SMSBackup struct {
	path  string
	clock common.Clock
}

func NewSMSBackup(path string, clock common.Clock) *SMSBackup {
	if clock == nil {
		clock = common.SystemClock
	}

	return &SMSBackup{
		path:  path,
		clock: clock,
	}
}

func (s *SMSBackup) GetLatestMessages(ctx context.Context, daysBack int) ([]*database.Message, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sms backup %s", s.path)
	}

	defer func() {
		_ = f.Close()
	}()

	messages, err := ReadSMS(ctx, f)
	if err != nil {
		return nil, err
	}

	return inWindow(messages, s.clock(), daysBack), nil
}

// ReadSMS decodes a CSV inbox export and keeps the rows that look like bank alerts.
func ReadSMS(ctx context.Context, r io.Reader) ([]*database.Message, error) {
	var rows []*smsRow

	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode sms backup")
	}

	var messages []*database.Message

	for i, row := range rows {
		if row == nil || strings.TrimSpace(row.Body) == "" {
			continue
		}

		if !isBankSender(row.Address) && !containsAny(row.Body, smsKeywords) {
			continue
		}

		if row.Date <= 0 {
			zerolog.Ctx(ctx).Warn().Int("row", i+1).Msg("sms row without date, skipping")
			continue
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = contentID(row.Address, row.Body)
		}

		messages = append(messages, &database.Message{
			ID:         "sms-" + id,
			Sender:     strings.TrimSpace(row.Address),
			Body:       row.Body,
			ReceivedAt: time.UnixMilli(row.Date).UTC(),
		})
	}

	return messages, nil
}
