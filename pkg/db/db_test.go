package db_test

import (
	"testing"

	"redddate/pkg/config"
	"redddate/pkg/db"
	"redddate/pkg/db/dbtest"
	"redddate/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestMySQLDSN(t *testing.T) {
	cfg := config.MySQLConfig{
		Host:     "db",
		Port:     "3306",
		User:     "root",
		Password: "secret",
		Database: "redddate",
	}
	assert.Equal(t, "root:secret@tcp(db:3306)/redddate?charset=utf8mb4&parseTime=true&loc=UTC", db.MySQLDSN(cfg))

	cfg.DSN = "custom"
	assert.Equal(t, "custom", db.MySQLDSN(cfg))
}

func TestMigrate(t *testing.T) {
	gdb := dbtest.Open(t)

	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
	assert.True(t, gdb.Migrator().HasColumn(&models.Profile{}, "f_min_age"))
	assert.True(t, gdb.Migrator().HasTable("subreddits"))

	// 두 번 실행해도 문제 없어야 한다
	assert.NoError(t, db.Migrate(gdb))
}
