package main

import (
	"context"
	"flag"
	"log"
	"time"

	"redddate/pkg/config"
	"redddate/pkg/redis"
	"redddate/services/gateway/handler"
	"redddate/services/gateway/transport"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Panic("Redis 연결 실패: ", err)
	}
	defer redisClient.Close()

	gatewayHandler := handler.NewGatewayHandler(map[string]string{
		transport.PathSearch: cfg.Gateway.SearchURL,
		transport.PathUser:   cfg.Gateway.UserURL,
	})
	router := transport.NewRouter(gatewayHandler, redisClient)

	log.Printf("🚀 Gateway Service Started on %s", cfg.HTTP.Addr())
	log.Fatal(router.Start(cfg.HTTP.Addr()))
}
