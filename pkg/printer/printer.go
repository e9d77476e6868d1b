package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type Printer struct {
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Scan(progress database.ScanProgress) string {
	var sb strings.Builder

	if progress.Error != "" {
		sb.WriteString("Scan failed ❌")
	} else {
		sb.WriteString("Scan finished ✅")
	}

	sb.WriteString(fmt.Sprintf("\nMessages: %v/%v", progress.ScannedMessages, progress.TotalMessages))
	sb.WriteString(fmt.Sprintf("\nTransactions found: %v 🔎", progress.TransactionsFound))
	sb.WriteString(fmt.Sprintf("\nSaved: %v 🔥", progress.TransactionsSaved))
	sb.WriteString(fmt.Sprintf("\nDuplicates: %v ✨", progress.Duplicates))
	sb.WriteString(fmt.Sprintf("\nIgnored: %v 🚯", progress.Ignored))
	sb.WriteString(fmt.Sprintf("\nParse errors: %v 🚒", progress.ParseFailures))
	sb.WriteString(fmt.Sprintf("\nSave errors: %v 🚒", progress.PersistenceFailures))

	if progress.Error != "" {
		sb.WriteString(fmt.Sprintf("\n\nERROR: %s", progress.Error))
	} else if progress.TransactionsFound > 0 && progress.TransactionsFound == progress.TransactionsSaved {
		sb.WriteString("\n\nAll transactions are saved! 🎉")
	}

	return sb.String()
}

func (p *Printer) Transactions(txs []*database.Transaction) string {
	if len(txs) == 0 {
		return "No transactions"
	}

	var sb strings.Builder

	for _, tx := range txs {
		p.FancyPrintTx(tx, &sb)
	}

	sb.WriteString("\n")
	sb.WriteString(p.Totals(txs))

	return sb.String()
}

// Totals sums debits per category and currency.
func (p *Printer) Totals(txs []*database.Transaction) string {
	type bucket struct {
		category database.Category
		currency string
	}

	sums := map[bucket]decimal.Decimal{}

	for _, tx := range txs {
		if tx.Type != database.TransactionTypeDebit {
			continue
		}

		b := bucket{category: tx.Category, currency: tx.Currency}
		sums[b] = sums[b].Add(tx.Amount)
	}

	if len(sums) == 0 {
		return "No spending"
	}

	keys := lo.Keys(sums)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}

		return keys[i].currency < keys[j].currency
	})

	var sb strings.Builder

	sb.WriteString("Spending by category:")

	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("\n%s: %s %s", k.category, sums[k].StringFixed(2), k.currency))
	}

	return sb.String()
}

func (p *Printer) FancyPrintTx(tx *database.Transaction, sb *strings.Builder) {
	sb.WriteString(fmt.Sprintf("Date: %s", tx.Timestamp.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("\n%s: %v %v", tx.Type, tx.Amount.StringFixed(2), tx.Currency))
	sb.WriteString(fmt.Sprintf("\nMerchant: %s", tx.Merchant))
	sb.WriteString(fmt.Sprintf("\nCategory: %s", tx.Category))

	if tx.CardHandle != "" {
		sb.WriteString(fmt.Sprintf("\nCard: *%s", tx.CardHandle))
	}

	sb.WriteString("\n====================\n")
}
