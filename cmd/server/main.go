package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	categoriesapi "quizbank/internal/categories/api"
	categoriesservice "quizbank/internal/categories/service"
	categoriesstore "quizbank/internal/categories/store"
	"quizbank/internal/config"
	miniodb "quizbank/internal/database/minio"
	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/middleware"
	"quizbank/internal/objectstore"
	questionsapi "quizbank/internal/questions/api"
	questionsservice "quizbank/internal/questions/service"
	questionsstore "quizbank/internal/questions/store"
	usersapi "quizbank/internal/users/api"
	usersservice "quizbank/internal/users/service"
	usersstore "quizbank/internal/users/store"
	"quizbank/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New(cfg.App.Name, "", "")
	appLogger.Info("Logger initialized")

	// Initialize database connections
	mongoClient, err := mongodb.GetClient(&cfg.Databases.MongoDB)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	db := mongoClient.Database(cfg.Databases.MongoDB.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		cancel()
		appLogger.Fatal(err.Error())
	}
	cancel()
	appLogger.Info("Database connection established and indexes ensured")

	minioClient, err := miniodb.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	appLogger.Info("Object storage connection established")

	// Initialize dependencies (Store -> Service -> Handler)
	userStore := usersstore.NewMongoUserStore(db)
	categoryStore := categoriesstore.NewMongoCategoryStore(db)
	questionStore := questionsstore.NewMongoQuestionStore(db)
	mappingStore := questionsstore.NewMongoMappingStore(db)

	uploader := objectstore.NewUploader(minioClient, cfg.Databases.MinIO.Bucket, cfg.Databases.MinIO.PublicURL)

	userService := usersservice.NewService(userStore, cfg.Auth.JwtSecret, time.Duration(cfg.Auth.TokenTTL)*time.Second)
	categoryService := categoriesservice.NewService(categoryStore)
	questionService := questionsservice.NewService(questionStore, mappingStore, categoryService, appLogger)

	userHandler := usersapi.NewHandler(userService, uploader, appLogger)
	categoryHandler := categoriesapi.NewHandler(categoryService)
	questionHandler := questionsapi.NewHandler(questionService)
	appLogger.Info("Dependencies injected")

	// Setup gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(cfg.App.Name), gin.Recovery())

	authGuard := middleware.AuthJWT(cfg.Auth.JwtSecret)

	apiV1 := router.Group("/api/v1")
	usersapi.RegisterRoutes(apiV1.Group("/users"), userHandler, authGuard)
	categoriesapi.RegisterRoutes(apiV1.Group("/categories"), categoryHandler, authGuard)
	questionsapi.RegisterRoutes(apiV1.Group("/questions"), questionHandler, authGuard)
	appLogger.Info("Router setup completed")

	appLogger.Info("Starting server on " + cfg.Server.Address)
	if err := router.Run(cfg.Server.Address); err != nil {
		appLogger.Fatal(err.Error())
	}
}
