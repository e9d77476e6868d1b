package database

type ScanProgress struct {
	TotalMessages       int    `json:"totalMessages"`
	ScannedMessages     int    `json:"scannedMessages"`
	TransactionsFound   int    `json:"transactionsFound"`
	TransactionsSaved   int    `json:"transactionsSaved"`
	Duplicates          int    `json:"duplicates"`
	Ignored             int    `json:"ignored"`
	ParseFailures       int    `json:"parseFailures"`
	PersistenceFailures int    `json:"persistenceFailures"`
	IsComplete          bool   `json:"isComplete"`
	Error               string `json:"error,omitempty"`
}

// ExportedData is the JSON document carried inside an encrypted export blob.
type ExportedData struct {
	Version      int            `json:"version"`
	ExportedAt   string         `json:"exportedAt"`
	Transactions []*Transaction `json:"transactions"`
}
