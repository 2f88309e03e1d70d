package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"taskapi/internal/auth"
	"taskapi/internal/config"
	"taskapi/internal/db"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

// seedUser bundles a demo user with its plaintext password and tasks.
type seedUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Tasks     []model.Task
}

var demoUsers = []seedUser{
	{
		Username:  "alice",
		Password:  "pw123456",
		FirstName: "Alice",
		LastName:  "Anderson",
		Tasks: []model.Task{
			{Title: "Buy milk", Description: "Two liters, whole", Status: model.TaskStatusNew},
			{Title: "Write report", Description: "Quarterly numbers", Status: model.TaskStatusInProgress},
		},
	},
	{
		Username:  "bob",
		Password:  "pw654321",
		FirstName: "Bob",
		Tasks: []model.Task{
			{Title: "Fix the fence", Status: model.TaskStatusNew},
			{Title: "Call the bank", Status: model.TaskStatusCompleted},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	hasher := auth.NewPasswordHasher()
	ctx := context.Background()

	log.Println("Seeding demo users and tasks...")
	users, tasks, err := seed(ctx, userRepo, taskRepo, hasher)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Tasks created: %d", tasks)
}

// seed inserts the demo data, skipping users that already exist.
func seed(ctx context.Context, userRepo repository.UserRepository, taskRepo repository.TaskRepository, hasher *auth.PasswordHasher) (users int, tasks int, err error) {
	for _, demo := range demoUsers {
		existing, err := userRepo.FindByUsername(ctx, demo.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			return users, tasks, err
		}
		if existing != nil {
			log.Printf("User %q already exists, skipping", demo.Username)
			continue
		}

		digest, err := hasher.Hash(demo.Password)
		if err != nil {
			return users, tasks, err
		}

		user := &model.User{
			Username:     demo.Username,
			FirstName:    demo.FirstName,
			LastName:     demo.LastName,
			PasswordHash: digest,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return users, tasks, err
		}
		users++

		for _, t := range demo.Tasks {
			task := t
			task.OwnerID = user.ID
			if err := taskRepo.Create(ctx, &task); err != nil {
				return users, tasks, err
			}
			tasks++
		}
	}

	return users, tasks, nil
}
