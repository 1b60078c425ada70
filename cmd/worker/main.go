package main

import (
	"time"

	"videotube/pkg/config"
	"videotube/pkg/logger"
	"videotube/pkg/media"
	"videotube/pkg/storage"
	"videotube/pkg/tasks"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New().With("service", "worker")

	files, err := storage.New(cfg, media.NewFFProbe(), log)
	if err != nil {
		log.Error("Failed to create file storage: %v", err)
		panic(err)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				tasks.QueueCleanup: 1,
			},
			Logger: log.Logrus(),
			// 30s, 1m, 2m ... capped at 1h
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				delay := 30 * time.Second
				for i := 0; i < n && delay < time.Hour; i++ {
					delay *= 2
				}
				if delay > time.Hour {
					delay = time.Hour
				}
				log.Warn("Task %s failed %d times, retrying in %v: %v", task.Type(), n+1, delay, err)
				return delay
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRemoveAsset, tasks.NewRemoveAssetHandler(files).ProcessTask)

	log.Info("Worker starting, consuming queue %s", tasks.QueueCleanup)
	if err := srv.Run(mux); err != nil {
		log.Error("Worker stopped: %v", err)
		panic(err)
	}
}
