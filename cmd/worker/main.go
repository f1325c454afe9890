package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookhaven-backend/pkg/container"
	"bookhaven-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	c, err := container.NewContainer(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	srv, mux := setupAsynqServer(c)
	scheduler := setupScheduler(c)

	if err := srv.Start(mux); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}
	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}()

	log.Println("Worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("Worker stopped")
}
