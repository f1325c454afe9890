package main

import (
	bannerjob "bookhaven-backend/internal/domains/banner/job"
	"bookhaven-backend/internal/infrastructure/email"
	emailjob "bookhaven-backend/internal/infrastructure/email/job"
	"bookhaven-backend/internal/infrastructure/queue"
	"bookhaven-backend/internal/shared"
	"bookhaven-backend/pkg/container"

	"github.com/hibiken/asynq"
)

// setupAsynqServer builds the task server and registers every handler.
// The email queue outweighs maintenance so claim mails are not starved
// by sweeps.
func setupAsynqServer(c *container.Container) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueEmail:       6,
				shared.QueueMaintenance: 1,
			},
		},
	)

	emailService := email.NewSMTPEmailService(
		c.Config.SMTP.Host,
		c.Config.SMTP.Port,
		c.Config.SMTP.From,
	)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeSendClaimEmail, emailjob.NewOrderClaimEmailHandler(emailService))
	mux.Handle(shared.TypeExpireBanners, bannerjob.NewExpireBannersHandler(c.BannerService))

	return srv, mux
}

func setupScheduler(c *container.Container) *queue.Scheduler {
	scheduler := queue.NewScheduler(c.Config.Redis.Host)
	if err := scheduler.RegisterJobs(); err != nil {
		panic(err)
	}
	return scheduler
}
