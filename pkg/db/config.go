package db

import (
	"fmt"

	"redddate/pkg/config"
)

// MySQLDSN: 설정에서 DSN 만들기. DSN이 직접 주어지면 그대로 사용
func MySQLDSN(cfg config.MySQLConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
}
