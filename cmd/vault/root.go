package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/skynet2/ogwallet-vault/pkg/app"
	"github.com/skynet2/ogwallet-vault/pkg/config"
)

// cli carries the state prepared by the root command for its subcommands.
type cli struct {
	envFile    string
	passphrase string

	cfg  *config.Config
	app  *app.App
	ctx  context.Context
	stop context.CancelFunc

	released bool
}

func newRootCommand() *cobra.Command {
	return (&cli{}).command()
}

// release locks the vault and drops the signal handler. Safe to call more than once.
func (c *cli) release() {
	if c.released {
		return
	}

	c.released = true

	if c.app != nil {
		c.app.Close(c.ctx)
	}

	if c.stop != nil {
		c.stop()
	}
}

func (c *cli) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ogwallet-vault",
		Short: "Bank alert parser and passphrase-gated transaction vault",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.envFile)
			if err != nil {
				return err
			}

			c.ctx, c.stop = signal.NotifyContext(cfg.Logger(cmd.Context()), os.Interrupt, syscall.SIGTERM)

			if c.passphrase == "" {
				c.passphrase = cfg.VaultPassphrase
			}

			if c.passphrase == "" {
				c.release()
				return errors.New("vault passphrase is required (--passphrase or VAULT_PASSPHRASE)")
			}

			c.cfg = cfg

			a, err := app.New(cfg, nil)
			if err != nil {
				c.release()
				return err
			}

			c.app = a

			if err = a.Unlock(c.ctx, c.passphrase); err != nil {
				c.release()
				return err
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.envFile, "env", ".env", "dotenv file to load")
	rootCmd.PersistentFlags().StringVar(&c.passphrase, "passphrase", "", "vault passphrase, defaults to VAULT_PASSPHRASE")

	rootCmd.AddCommand(
		newScanCommand(c),
		newExportCommand(c),
		newImportCommand(c),
		newStatementCommand(c),
		newListCommand(c),
	)

	// PersistentPostRun is skipped when RunE fails, so every subcommand releases on its own.
	for _, sub := range rootCmd.Commands() {
		runE := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer c.release()

			return runE(cmd, args)
		}
	}

	return rootCmd
}
