package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "community_backend/internal/feature/auth/domain/entity"
	eventsentity "community_backend/internal/feature/events/domain/entity"
	profileentity "community_backend/internal/feature/profile/domain/entity"
	teamsentity "community_backend/internal/feature/teams/domain/entity"
)

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, pass, name, port)

	var (
		db  *gorm.DB
		err error
	)

	// コンテナ起動直後はDBが立ち上がっていないことがあるためリトライする
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Event, 登録台帳など）
		if err := db.AutoMigrate(
			&authentity.User{},
			&eventsentity.Event{},
			&eventsentity.Registration{},
			&profileentity.UserProfile{},
			&teamsentity.Team{},
			&teamsentity.TeamMember{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
