package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookhaven-backend/internal/infrastructure/email"
	"bookhaven-backend/internal/shared"
)

// OrderClaimEmailHandler delivers the claim-code confirmation mail
// enqueued when an order is placed.
type OrderClaimEmailHandler struct {
	emailService email.EmailService
}

func NewOrderClaimEmailHandler(emailService email.EmailService) *OrderClaimEmailHandler {
	return &OrderClaimEmailHandler{
		emailService: emailService,
	}
}

func (h *OrderClaimEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderClaimEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal OrderClaimEmail payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Int("order_id", payload.OrderID).
		Msg("Processing order claim email")

	if err := h.emailService.SendOrderClaimEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send order claim email")
		return fmt.Errorf("send order claim email: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Int("order_id", payload.OrderID).
		Msg("Order claim email sent successfully")

	return nil
}
