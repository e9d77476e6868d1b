package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Message is a raw inbound message as delivered by a MessageSource.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"receivedAt" gorm:"index"`
}

type Transaction struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(20,2)"`
	Currency        string          `json:"currency"`
	Merchant        string          `json:"merchant"`
	Category        Category        `json:"category"`
	CardHandle      string          `json:"cardHandle"`
	Type            TransactionType `json:"type"`
	Timestamp       time.Time       `json:"timestamp" gorm:"index"`
	SourceMessageID string          `json:"sourceMessageId"`
	DedupKey        string          `json:"dedupKey" gorm:"uniqueIndex"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (Message) TableName() string {
	return "messages"
}

type TransactionType string

const (
	TransactionTypeDebit  = TransactionType("DEBIT")
	TransactionTypeCredit = TransactionType("CREDIT")
)

// RawTransactionMatch is the structured outcome of a successfully parsed message body.
type RawTransactionMatch struct {
	Amount          decimal.Decimal
	Currency        string
	AccountHandle   string
	MerchantRaw     string
	Category        Category
	TransactionType TransactionType
	RawBody         string
	Template        string
}

func (m RawTransactionMatch) WithCategory(category Category) RawTransactionMatch {
	m.Category = category

	return m
}
