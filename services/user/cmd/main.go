package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"redddate/pkg/config"
	"redddate/pkg/db"
	"redddate/pkg/logger"
	"redddate/pkg/mq"
	"redddate/pkg/redis"
	"redddate/pkg/relation"
	"redddate/services/user/event"
	"redddate/services/user/handler"
	"redddate/services/user/repository"
	"redddate/services/user/service"
	"redddate/services/user/transport"
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

	if err := logger.InitLogger(logger.ServiceTypeUser, mqClient); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	dbConn, err := db.ConnectMySQL(cfg.MySQL)
	if err != nil {
		log.Panic("MySQL 연결 실패: ", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		log.Panic("Failed to DB Migration: ", err)
	}

	redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Panic("Redis 연결 실패: ", err)
	}
	defer redisClient.Close()

	// 의존성 주입 (DI)
	userRepo := repository.NewUserRepository(dbConn)
	relations := relation.NewStore(dbConn)
	userService := service.NewUserService(userRepo, relations, redisClient, cfg.Search.ActiveWindow)
	userHandler := handler.NewUserHandler(userService)

	consumer := event.NewConsumer(mqClient, userService)
	consumer.StartListening()

	router := transport.NewRouter(userHandler)

	log.Printf("🚀 User Service Started on %s", cfg.HTTP.Addr())
	log.Fatal(http.ListenAndServe(cfg.HTTP.Addr(), router))
}
