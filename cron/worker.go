package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"chairside/config"
	"chairside/database"
	"chairside/models"
	"chairside/services/audit"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitAuditWorker runs the async audit worker in background. Entries are
// drained from the queue and written to the audit_log collection; the
// request path never waits on this.
func InitAuditWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(audit.TypeRecord, handleAuditTask)

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[AuditWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AuditWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AuditWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleAuditTask(ctx context.Context, task *asynq.Task) error {
	var entry models.AuditEntry
	if err := json.Unmarshal(task.Payload(), &entry); err != nil {
		log.Printf("[AuditWorker] invalid payload: %v", err)
		return err
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	if _, err := database.DB().Collection("audit_log").InsertOne(ctx, entry); err != nil {
		log.Printf("[AuditWorker] failed to store audit entry %s/%s: %v", entry.Action, entry.GroupID, err)
		return err
	}
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[AuditWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
