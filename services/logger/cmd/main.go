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
	"redddate/services/logger/event"
	"redddate/services/logger/repo"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := db.ConnectMongo(cfg.Mongo)
	if err != nil {
		log.Panic("MongoDB 연결 실패: ", err)
	}
	defer mongoClient.Disconnect(ctx)

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Panic("RabbitMQ 연결 실패: ", err)
	}
	defer mqClient.Close()

	// 로거 서비스 자신의 로그는 콘솔에만 남긴다
	if err := logger.InitLogger(logger.ServiceTypeLogger, nil); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	logRepo := repo.NewLogRepository(mongoClient, cfg.Mongo.Database)
	if err := logRepo.EnsureIndexes(ctx); err != nil {
		log.Panic("Log 인덱스 생성 실패: ", err)
	}

	eventConsumer := event.NewConsumer(mqClient, logRepo)
	go eventConsumer.StartListening()

	log.Println("🚀 Logger Service Started")
	select {}
}
