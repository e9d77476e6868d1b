package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skynet2/ogwallet-vault/pkg/processor"
	"github.com/skynet2/ogwallet-vault/pkg/source"
)

func newScanCommand(c *cli) *cobra.Command {
	var mboxPath string
	var smsPath string
	var days int

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Parse bank alerts from an archive (or the vault inbox) and store new transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if mboxPath != "" && smsPath != "" {
				return errors.New("use either --mbox or --sms-csv")
			}

			if days <= 0 {
				days = c.cfg.ScanDaysBack
			}

			var src processor.MessageSource = c.app.Session

			switch {
			case mboxPath != "":
				src = source.NewMbox(mboxPath, nil)
			case smsPath != "":
				src = source.NewSMSBackup(smsPath, nil)
			}

			var failed bool

			for progress := range c.app.Processor.ScanAsync(c.ctx, src, days) {
				if !progress.IsComplete {
					zerolog.Ctx(c.ctx).Info().
						Int("scanned", progress.ScannedMessages).
						Int("total", progress.TotalMessages).
						Int("found", progress.TransactionsFound).
						Msg("scan progress")

					continue
				}

				failed = progress.Error != ""

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.app.Printer.Scan(progress))
			}

			if c.ctx.Err() != nil {
				return errors.Wrap(c.ctx.Err(), "scan cancelled")
			}

			if failed {
				return errors.New("scan failed")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&mboxPath, "mbox", "", "exported e-mail archive")
	cmd.Flags().StringVar(&smsPath, "sms-csv", "", "sms backup csv (id,address,body,date)")
	cmd.Flags().IntVar(&days, "days", 0, "scan window in days, defaults to SCAN_DAYS_BACK")

	return cmd
}

func newExportCommand(c *cli) *cobra.Command {
	var out string
	var password string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all transactions as an encrypted blob",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blob, err := c.app.Export.Export(c.ctx, password)
			if err != nil {
				return err
			}

			if err = os.WriteFile(out, []byte(blob), 0o600); err != nil {
				return errors.Wrapf(err, "failed to write %s", out)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "export written to %s\n", out)

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "destination file")
	cmd.Flags().StringVar(&password, "password", "", "export password")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newImportCommand(c *cli) *cobra.Command {
	var in string
	var password string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load transactions from an encrypted export, skipping the ones already stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blob, err := os.ReadFile(in)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", in)
			}

			result, err := c.app.Export.Import(c.ctx, strings.TrimSpace(string(blob)), password)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %d, imported: %d, skipped: %d, failed: %d\n",
				result.Total, result.Imported, result.Skipped, result.Failed)

			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "export file")
	cmd.Flags().StringVar(&password, "password", "", "export password")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newStatementCommand(c *cli) *cobra.Command {
	var out string
	var send bool

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Write an xlsx statement of all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := c.app.Session.ListTransactions(c.ctx)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err = c.app.Printer.Statement(&buf, txs); err != nil {
				return err
			}

			if err = os.WriteFile(out, buf.Bytes(), 0o600); err != nil {
				return errors.Wrapf(err, "failed to write %s", out)
			}

			if send {
				if c.app.Telegram == nil {
					return errors.New("telegram is not configured")
				}

				if err = c.app.Telegram.SendDocument(
					c.ctx,
					c.cfg.TelegramChatID,
					filepath.Base(out),
					buf.Bytes(),
					c.app.Printer.Totals(txs),
				); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "statement with %d transactions written to %s\n", len(txs), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "statement.xlsx", "destination xlsx file")
	cmd.Flags().BoolVar(&send, "telegram", false, "also send the statement to the telegram chat")

	return cmd
}

func newListCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print stored transactions with totals per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := c.app.Session.ListTransactions(c.ctx)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.app.Printer.Transactions(txs))

			return nil
		},
	}
}
