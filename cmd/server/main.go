package main

import (
	"log"

	"task_backend/internal/app/config"
	"task_backend/internal/app/router"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authmw "task_backend/internal/feature/auth/transport/middleware"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	useradapters "task_backend/internal/feature/users/adapters"
	userhandler "task_backend/internal/feature/users/transport/handler"
	userusecase "task_backend/internal/feature/users/usecase"
	infradb "task_backend/internal/platform/db"
	jwtauth "task_backend/internal/platform/jwt"
)

func main() {
	// Config (fatal without a secret key: tokens would be unverifiable)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// db
	db := infradb.OpenDB(cfg)

	// Token service
	tokens := jwtauth.NewService(cfg.SecretKey, cfg.TokenTTL)

	// Repository
	userRepo := useradapters.NewUserRepository(db)
	taskRepo := taskadapters.NewTaskRepository(db)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo)
	taskUC := taskusecase.NewTaskUsecase(taskRepo, userRepo)
	loginUC := authusecase.NewLoginUsecase(userRepo, tokens)

	// Handler
	authH := authhandler.NewAuthHandler(loginUC, cfg.LegacyStatusCodes)
	userH := userhandler.NewUserHandler(userUC, cfg.LegacyStatusCodes)
	taskH := taskhandler.NewTaskHandler(taskUC, cfg.LegacyStatusCodes)

	// Authorization gate
	gate := authmw.AuthRequired(tokens, userRepo)

	r := router.NewRouter(authH, userH, taskH, gate)

	if err := r.Run(cfg.Address); err != nil {
		log.Fatal(err)
	}
}
