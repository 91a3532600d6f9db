package main

import (
	"context"
	"log"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	demoEmail    = "demo@taskboard.local"
	demoPassword = "demo-password"
	demoName     = "Demo User"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Board{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Idempotent on the demo email: a rerun leaves existing data alone.
	existing, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		log.Fatalf("Failed to check demo user: %v", err)
	}
	if existing != nil {
		log.Printf("Demo user %s already exists (id=%d), nothing to do", demoEmail, existing.ID)
		return
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &model.User{Name: demoName, Email: demoEmail, PasswordHash: hash}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	boards := []*model.Board{
		{UserID: user.ID, Name: "Work"},
		{UserID: user.ID, Name: "Personal"},
	}
	for _, board := range boards {
		if err := boardRepo.Create(ctx, board); err != nil {
			log.Fatalf("Failed to create board %q: %v", board.Name, err)
		}
	}

	due := time.Now().AddDate(0, 0, 7)
	desc := "Walk through the API with the demo token"
	tasks := []*model.Task{
		{UserID: user.ID, BoardID: boards[0].ID, Name: "Review onboarding doc", Status: model.StatusPlanned, Email: user.Email},
		{UserID: user.ID, BoardID: boards[0].ID, Name: "Prepare API demo", Description: &desc, Status: model.StatusInProgress, DueDate: &due, Email: user.Email},
		{UserID: user.ID, BoardID: boards[1].ID, Name: "Book dentist appointment", Status: model.StatusDone, Email: user.Email},
	}
	for _, task := range tasks {
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatalf("Failed to create task %q: %v", task.Name, err)
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s (password: %s)", demoEmail, demoPassword)
	log.Printf("  - Boards created: %d", len(boards))
	log.Printf("  - Tasks created: %d", len(tasks))
}
