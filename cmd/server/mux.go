package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type Handler struct {
	processor MessageProcessor
	vault     Vault
	apiKey    string
	daysBack  int
}

func NewHandler(
	processor MessageProcessor,
	vault Vault,
	apiKey string,
	daysBack int,
) *Handler {
	return &Handler{
		processor: processor,
		vault:     vault,
		apiKey:    apiKey,
		daysBack:  daysBack,
	}
}

func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.authorize)

	api.HandleFunc("/messages", h.Messages).Methods(http.MethodPost)
	api.HandleFunc("/scan", h.Scan).Methods(http.MethodPost)
	api.HandleFunc("/status", h.Status).Methods(http.MethodGet)
}

func (h *Handler) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiKey == "" || h.apiKey != r.URL.Query().Get("api_key") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(log.Logger.WithContext(r.Context())))
	})
}

// Messages stores forwarded SMS in the vault inbox.
func (h *Handler) Messages(
	w http.ResponseWriter,
	r *http.Request,
) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	var inbound []InboundMessage
	if err = json.Unmarshal(b, &inbound); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	messages := make([]*database.Message, 0, len(inbound))

	for _, m := range inbound {
		if strings.TrimSpace(m.Body) == "" {
			continue
		}

		msg := &database.Message{
			ID:     m.ID,
			Sender: m.Sender,
			Body:   m.Body,
		}

		if m.Timestamp > 0 {
			msg.ReceivedAt = time.Unix(m.Timestamp, 0).UTC()
		}

		messages = append(messages, msg)
	}

	if err = h.processor.AddMessages(r.Context(), messages); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to store messages")
		writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})

		return
	}

	writeJSON(w, http.StatusAccepted, AcceptedResponse{Accepted: len(messages)})
}

// Scan runs a scan over the vault inbox and answers with the terminal snapshot.
func (h *Handler) Scan(
	w http.ResponseWriter,
	r *http.Request,
) {
	days := h.daysBack

	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "days must be a positive integer"})
			return
		}

		days = parsed
	}

	var final database.ScanProgress

	err := h.processor.Scan(r.Context(), h.vault, days, func(progress database.ScanProgress) {
		final = progress
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("scan failed")
		writeJSON(w, statusFor(err), ScanResponse{Progress: final})

		return
	}

	writeJSON(w, http.StatusOK, ScanResponse{Progress: final})
}

func (h *Handler) Status(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, h.vault.Status())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrVaultLocked):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
