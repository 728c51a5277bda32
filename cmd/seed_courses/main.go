package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"training-quiz/internal/adapter"
	"training-quiz/internal/cache"
	"training-quiz/internal/config"
	"training-quiz/internal/database"
	"training-quiz/internal/domain"
	"training-quiz/internal/logger"
	"training-quiz/internal/repository"
	"training-quiz/internal/service"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	seedFile := flag.String("file", cfg.Training.SeedFile, "course seed file (JSON)")
	flag.Parse()

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Loading seed data from file", zap.String("path", *seedFile))
	courses, err := repository.LoadSeedFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to load seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	db, err := database.NewSQLXOracleDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	catalog := repository.NewCourseCatalogDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	var seeded []string
	for _, course := range courses {
		if err := seedCourse(ctx, txManager, catalog, course); err != nil {
			log.Error("Error seeding course, transaction rolled back", zap.String("course_id", course.ID), zap.Error(err))
			continue
		}
		seeded = append(seeded, course.ID)
		log.Info("Seeded course", zap.String("course_id", course.ID), zap.String("name", course.Name))
	}

	if cfg.Redis.Enabled && len(seeded) > 0 {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, cached catalog expires on its own TTL", zap.Error(err))
		} else {
			defer redisClient.Close()
			cached := service.NewCachedCourseCatalog(catalog, adapter.NewRedisCacheAdapter(redisClient), cfg.Training.CatalogCacheTTL)
			if err := cached.Invalidate(ctx, seeded...); err != nil {
				log.Warn("Failed to invalidate catalog cache", zap.Error(err))
			}
		}
	}

	log.Info("Course seeding completed", zap.Int("seeded", len(seeded)), zap.Int("total", len(courses)))
	if len(seeded) != len(courses) {
		os.Exit(1)
	}
}

// seedCourse writes the course and its quizzes in one transaction.
func seedCourse(ctx context.Context, tx domain.TransactionManager, catalog *repository.CourseCatalogDatabaseAdapter, course *domain.Course) error {
	return tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, quiz := range course.Quizzes {
			if quiz == nil {
				continue
			}
			if err := catalog.SaveQuiz(txCtx, quiz); err != nil {
				return err
			}
		}
		return catalog.SaveCourse(txCtx, course)
	})
}
