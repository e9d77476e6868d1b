package source

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

var emailKeywords = []string{
	"transaction", "payment", "purchase", "bill", "invoice",
	"statement", "charged", "debited", "credited", "spent",
	"bank", "card", "account", "receipt",
}

var smsKeywords = []string{
	"spent", "debited", "debit", "transaction", "purchase",
	"credited", "credit", "card", "account", "balance",
	"rs.", "inr", "₹", "upi", "payment",
}

var bankSenders = []string{
	"HDFCBK", "ICICIB", "SBIIN", "AXISBK", "KOTAKB",
	"YESBNK", "INDUSB", "PNBSMS", "BOISMS", "CBSSBI",
	"SCBANK", "CITIBK", "HSBCIN", "DEUTSC", "RBLBNK",
	"AMEXIN", "BOBCRD", "IDFCFB", "AUBANK", "FEDBNK",
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)

	return lo.SomeBy(keywords, func(k string) bool {
		return strings.Contains(lower, k)
	})
}

// isBankSender accepts DLT headers with or without the operator prefix (VM-HDFCBK, AX-ICICIB).
func isBankSender(address string) bool {
	normalized := strings.ReplaceAll(strings.ToUpper(address), "-", "")

	return lo.SomeBy(bankSenders, func(id string) bool {
		return strings.Contains(normalized, id)
	})
}

func inWindow(
	messages []*database.Message,
	now time.Time,
	daysBack int,
) []*database.Message {
	since := common.WindowStart(now, daysBack)

	return lo.Filter(messages, func(m *database.Message, _ int) bool {
		return !m.ReceivedAt.Before(since)
	})
}
