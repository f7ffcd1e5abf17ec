package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"membership/config"
	"membership/models"
	"membership/services/messaging"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the offline email worker in background. Queued
// verification and welcome emails are delivered here so sign-up requests
// never block on the mail transport.
func InitEmailWorker(msgSvc messaging.MessagingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(messaging.TypeEmailSend, handleEmailTask(msgSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[EmailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(msgSvc messaging.MessagingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid payload: %v", err)
			return err
		}

		if err := msgSvc.Deliver(ctx, p); err != nil {
			log.Printf("[EmailWorker] failed to deliver email to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[EmailWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
