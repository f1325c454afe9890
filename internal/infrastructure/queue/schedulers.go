package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookhaven-backend/internal/shared"
	"bookhaven-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs wires all cron entries.
func (s *Scheduler) RegisterJobs() error {
	return s.registerExpireBannersJob()
}

// Banner sweep: hourly, deactivates banners whose window has ended.
func (s *Scheduler) registerExpireBannersJob() error {
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeExpireBanners, payload)

	_, err = s.scheduler.Register(
		"0 * * * *",
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ExpireBanners job", err)
		return err
	}

	logger.Info("Registered ExpireBanners job", map[string]interface{}{
		"schedule": "0 * * * *",
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
