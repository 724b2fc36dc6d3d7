package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jfinfosena/25adso-pap/cache"
	"github.com/jfinfosena/25adso-pap/config"
	"github.com/jfinfosena/25adso-pap/handler"
	"github.com/jfinfosena/25adso-pap/kafka"
	"github.com/jfinfosena/25adso-pap/log"
	"github.com/jfinfosena/25adso-pap/repository"
	loanservice "github.com/jfinfosena/25adso-pap/service/loan"
	"github.com/jfinfosena/25adso-pap/worker"
)

func main() {
	ctx := context.Background()
	logger := log.GetLogger(ctx)
	cfg := config.Load()

	db := repository.InitDatabase(cfg.Database)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	itemRepo := repository.NewItemRepo(db)
	loanRepo := repository.NewLoanRepo(db)
	outboxRepo := repository.NewOutboxRepo(db)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Fatalf("error creating redis client %s", err)
	}

	producer, err := kafka.NewProducer(cfg.Kafka.Host, cfg.Kafka.LoanEventTopic)
	if err != nil {
		logger.Fatalf("error creating kafka producer %s", err)
	}

	itemCache := cache.NewItemCache(client, cfg.ItemTTL)
	loanSvc := loanservice.NewService(loanRepo, itemCache, loanPeriod(cfg))

	go worker.NewSweeper(loanSvc, cfg.SweepEvery).Run(ctx)
	go worker.NewRelay(outboxRepo, producer, cfg.RelayEvery, cfg.RelayBatch).Run(ctx)

	router := handler.NewRouter(handler.Deps{
		Users:      userRepo,
		Categories: categoryRepo,
		Items:      itemRepo,
		Loans:      loanSvc,
		ItemCache:  itemCache,
		Limiter:    handler.NewRateLimiter(client, cfg.RateLimit, cfg.RateWin),
	})

	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Fatalf("server stopped: %s", err)
	}
}

func loanPeriod(cfg config.Config) time.Duration {
	return time.Duration(cfg.LoanDays) * 24 * time.Hour
}
