package main

import (
	"context"

	"github.com/skynet2/ogwallet-vault/pkg/database"
	"github.com/skynet2/ogwallet-vault/pkg/processor"
	"github.com/skynet2/ogwallet-vault/pkg/vault"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package main -source=interfaces.go

type MessageProcessor interface {
	AddMessages(
		ctx context.Context,
		messages []*database.Message,
	) error
	Scan(
		ctx context.Context,
		source processor.MessageSource,
		daysBack int,
		sink processor.Sink,
	) error
}

type Vault interface {
	Status() vault.Status
	GetLatestMessages(ctx context.Context, daysBack int) ([]*database.Message, error)
}
