package printer

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/tealeg/xlsx"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const statementSheet = "Transactions"

var statementHeader = []string{"Date", "Type", "Amount", "Currency", "Merchant", "Category", "Card", "ID"}

// Statement writes the transactions as a single-sheet XLSX workbook.
func (p *Printer) Statement(w io.Writer, txs []*database.Transaction) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(statementSheet)
	if err != nil {
		return errors.WithStack(err)
	}

	header := sheet.AddRow()
	for _, h := range statementHeader {
		header.AddCell().SetString(h)
	}

	for _, tx := range txs {
		row := sheet.AddRow()

		row.AddCell().SetString(tx.Timestamp.UTC().Format("2006-01-02 15:04"))
		row.AddCell().SetString(string(tx.Type))
		row.AddCell().SetFloat(tx.Amount.InexactFloat64())
		row.AddCell().SetString(tx.Currency)
		row.AddCell().SetString(tx.Merchant)
		row.AddCell().SetString(string(tx.Category))
		row.AddCell().SetString(tx.CardHandle)
		row.AddCell().SetString(tx.ID)
	}

	if err = file.Write(w); err != nil {
		return errors.Wrap(err, "failed to write statement")
	}

	return nil
}
