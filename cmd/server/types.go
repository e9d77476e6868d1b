package main

import (
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

// InboundMessage is one SMS as posted by a phone forwarder app.
type InboundMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}

type AcceptedResponse struct {
	Accepted int `json:"accepted"`
}

type ScanResponse struct {
	Progress database.ScanProgress `json:"progress"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
