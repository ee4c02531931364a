package main

import (
	"log"
	"os"
	"strings"

	"delapp/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		autoMigrate(db)
	}
	ensureUploadBase()
}

// autoMigrate migrates models individually so a failure on one doesn't
// block the others.
func autoMigrate(gdb *gorm.DB) {
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		log.Printf("migration warning (users): %v", err)
	}
	if err := gdb.AutoMigrate(&models.AuthToken{}); err != nil {
		log.Printf("migration warning (auth_tokens): %v", err)
	}
	if err := gdb.AutoMigrate(&models.Todo{}); err != nil {
		log.Printf("migration warning (todos): %v", err)
	}
	if err := gdb.AutoMigrate(&models.CashFlow{}); err != nil {
		log.Printf("migration warning (cash_flows): %v", err)
	}
}
