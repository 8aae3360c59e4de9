package main

import (
	"context"
	"flag"
	"log"
	"time"

	"redddate/pkg/config"
	"redddate/pkg/db"
	"redddate/pkg/logger"
	"redddate/pkg/mq"
	"redddate/pkg/redis"
	"redddate/pkg/relation"
	"redddate/services/search/event"
	"redddate/services/search/handler"
	"redddate/services/search/repository"
	"redddate/services/search/service"
	"redddate/services/search/transport"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Panic("RabbitMQ 연결 실패: ", err)
	}
	defer mqClient.Close()

	if err := logger.InitLogger(logger.ServiceTypeSearch, mqClient); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	if err := mqClient.DeclareExchange(mq.ExchangeFlagEvents, mq.ExchangeTypeFanout); err != nil {
		log.Panic("Exchange 선언 실패: ", err)
	}

	mysqlClient, err := db.ConnectMySQL(cfg.MySQL)
	if err != nil {
		log.Panic("MySQL 연결 실패: ", err)
	}
	if err := db.Migrate(mysqlClient); err != nil {
		log.Panic("Failed to DB Migration: ", err)
	}

	redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Panic("Redis 연결 실패: ", err)
	}
	defer redisClient.Close()

	// 의존성 주입 (DI)
	candidateRepo := repository.NewCandidateRepository(mysqlClient)
	profileRepo := repository.NewProfileRepository(mysqlClient)
	relations := relation.NewStore(mysqlClient)
	emitter := event.NewEmitter(mqClient)

	searchService := service.NewSearchService(candidateRepo, profileRepo, relations, cfg.Search)
	buffer := service.NewBuffer(redis.NewBufferStore(redisClient, cfg.Session.TTL), searchService, cfg.Search.BufferTTL)
	resultsService := service.NewResultsService(buffer, profileRepo, relations, cfg.Search)
	flagService := service.NewFlagService(buffer, profileRepo, relations, emitter)

	searchHandler := handler.NewSearchHandler(resultsService, flagService)
	router := transport.NewRouter(searchHandler, redisClient)

	log.Printf("🚀 Search Service Started on %s", cfg.HTTP.Addr())
	log.Fatal(router.Start(cfg.HTTP.Addr()))
}
