package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lyro/internal/cache"
	"lyro/internal/config"
	"lyro/internal/logger"
	"lyro/internal/repository"
	"lyro/internal/service"
	"lyro/internal/transport/rest"
)

func main() {
	ctx := context.Background()

	// Local development reads a .env file; production sets real env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		zlog.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	zlog.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		zlog.Fatal("failed to ping Redis", zap.Error(err))
	}
	zlog.Info("connected to Redis")

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	testRepo := repository.NewNBTTestRepo(db)
	subjectRepo := repository.NewSubjectRepo(db)
	topicRepo := repository.NewTopicRepo(db)
	schoolRepo := repository.NewSchoolRepo(db)
	voucherRepo := repository.NewVoucherRepo(db)

	// Unique indexes back the uniqueness guarantees of the data model
	for name, ensure := range map[string]func(context.Context) error{
		"subjects": subjectRepo.EnsureIndexes,
		"schools":  schoolRepo.EnsureIndexes,
		"vouchers": voucherRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			zlog.Fatal("failed to create indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	// Initialize caches
	questionCache := cache.NewQuestionCache(rdb)
	topicCache := cache.NewTopicCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Admin)
	questionSvc := service.NewQuestionService(questionRepo, questionCache, zlog)
	nbtSvc := service.NewNBTService(testRepo)
	subjectSvc := service.NewSubjectService(subjectRepo, topicRepo, topicCache, zlog)
	schoolSvc := service.NewSchoolService(schoolRepo)
	voucherSvc := service.NewVoucherService(voucherRepo, zlog)

	// Create router with container
	router := rest.NewRouter(&rest.Container{
		AuthService:     authSvc,
		QuestionService: questionSvc,
		NBTService:      nbtSvc,
		SubjectService:  subjectSvc,
		SchoolService:   schoolSvc,
		VoucherService:  voucherSvc,
		Logger:          zlog,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}
}
