package processor

import (
	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const defaultProgressEvery = 10

type Config struct {
	Repo             Repo
	Parser           Parser
	Categorizer      Categorizer
	DuplicateCleaner DuplicateCleaner
	Printer          Printer
	NotificationSvc  NotificationSvc
	NotifyChatID     int64
	ProgressEvery    int
	Clock            common.Clock
}

// Sink receives scan snapshots in order.
type Sink func(progress database.ScanProgress)
