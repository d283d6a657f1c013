package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/contact"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/validation"
)

// ContactSubmitter forwards contact messages upstream.
type ContactSubmitter interface {
	Submit(ctx context.Context, msg contact.Message) error
}

type ContactHandler struct {
	client  ContactSubmitter
	timeout time.Duration
}

func NewContactHandler(client ContactSubmitter, timeout time.Duration) *ContactHandler {
	return &ContactHandler{client: client, timeout: timeout}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var msg contact.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if errs := validation.ValidateContact(msg.Name); !errs.Valid() {
		fields := make(map[string]string, len(errs))
		for field, kind := range errs {
			fields[field] = string(kind)
		}
		respondFieldErrors(w, fields)
		return
	}

	if err := h.client.Submit(ctx, msg); err != nil {
		respondError(w, http.StatusBadGateway, "contact_failed", "failed to send message")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}
