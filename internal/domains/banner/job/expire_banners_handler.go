package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookhaven-backend/internal/domains/banner/service"
)

// ExpireBannersHandler runs the periodic sweep that deactivates banners
// whose display window has ended.
type ExpireBannersHandler struct {
	service service.ServiceInterface
}

func NewExpireBannersHandler(svc service.ServiceInterface) *ExpireBannersHandler {
	return &ExpireBannersHandler{service: svc}
}

func (h *ExpireBannersHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	swept, err := h.service.ExpireOutdatedBanners(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Banner expiry sweep failed")
		return err
	}

	log.Info().Int("swept", swept).Msg("Banner expiry sweep completed")
	return nil
}
