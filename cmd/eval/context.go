package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/ressKim-io/promptclf/internal/adapter/client"
	"github.com/ressKim-io/promptclf/internal/adapter/dataset"
	"github.com/ressKim-io/promptclf/internal/adapter/repository/postgres"
	"github.com/ressKim-io/promptclf/internal/domain/repository"
	"github.com/ressKim-io/promptclf/internal/domain/service"
	"github.com/ressKim-io/promptclf/internal/infrastructure/cache"
	"github.com/ressKim-io/promptclf/internal/infrastructure/config"
	"github.com/ressKim-io/promptclf/internal/infrastructure/database"
	"github.com/ressKim-io/promptclf/internal/infrastructure/logger"
	"github.com/ressKim-io/promptclf/internal/usecase"
)

// commandContext lazily builds the shared dependencies of the subcommands
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	log   *zap.Logger
	db    *gorm.DB
	redis *redis.Client
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.LoadFile(path)
	})
	return c.config, c.configErr
}

// logger writes harness logs to w so stdout carries only results
func (c *commandContext) logger(w io.Writer) *zap.Logger {
	if c.log == nil {
		c.log = logger.New(&c.config.Log, zapcore.AddSync(w))
	}
	return c.log
}

// repositories opens the history database when enabled; both are nil otherwise
func (c *commandContext) repositories(log *zap.Logger) (repository.EvaluationRunRepository, repository.EvaluationRecordRepository, error) {
	if !c.config.Database.Enabled {
		return nil, nil, nil
	}
	if c.db == nil {
		db, err := database.NewPostgresDB(&c.config.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		c.db = db
	}
	return postgres.NewEvaluationRunRepository(c.db), postgres.NewEvaluationRecordRepository(c.db), nil
}

// datasets returns the datasets-server provider, cached in Redis when enabled
func (c *commandContext) datasets(log *zap.Logger) service.DatasetProvider {
	var provider service.DatasetProvider = dataset.NewHuggingFaceProvider(c.config.Eval.DatasetsURL, c.config.Eval.Timeout)
	if !c.config.Redis.Enabled {
		return provider
	}
	if c.redis == nil {
		client, err := cache.NewRedisClient(&c.config.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without dataset cache", zap.Error(err))
			return provider
		}
		c.redis = client
	}
	return dataset.NewCachedProvider(provider, c.redis, c.config.Redis.TTL, log)
}

// classifier targets the running service, or the configured provider in-process when local
func (c *commandContext) classifier(ctx context.Context, local bool, log *zap.Logger) (service.Classifier, error) {
	if local {
		completer, err := client.NewCompleter(ctx, &c.config.LLM)
		if err != nil {
			return nil, err
		}
		log.Info("Classifying in-process", zap.String("provider", completer.Name()))
		return usecase.NewLocalClassifier(usecase.NewClassifyUsecase(completer, nil)), nil
	}

	cc := client.NewClassifyClient(c.config.Eval.ServerURL, c.config.Eval.Timeout)
	if err := cc.Ready(ctx); err != nil {
		return nil, fmt.Errorf("classification service at %s is not ready: %w", c.config.Eval.ServerURL, err)
	}
	provider := "unknown"
	if health, err := cc.Health(ctx); err == nil && health.Components["provider"] != "" {
		provider = health.Components["provider"]
	}
	log.Info("Classifying via service", zap.String("url", c.config.Eval.ServerURL), zap.String("provider", provider))
	return client.NewRemoteClassifier(cc), nil
}

// evaluationUsecase wires the harness for run and suite
func (c *commandContext) evaluationUsecase(ctx context.Context, local bool, log *zap.Logger) (usecase.EvaluationUsecase, error) {
	classifier, err := c.classifier(ctx, local, log)
	if err != nil {
		return nil, err
	}
	runRepo, recordRepo, err := c.repositories(log)
	if err != nil {
		return nil, err
	}
	return usecase.NewEvaluationUsecase(c.datasets(log), classifier, runRepo, recordRepo, log), nil
}

// historyUsecase wires read access to stored runs
func (c *commandContext) historyUsecase(log *zap.Logger) (usecase.EvaluationUsecase, error) {
	runRepo, recordRepo, err := c.repositories(log)
	if err != nil {
		return nil, err
	}
	if runRepo == nil {
		return nil, fmt.Errorf("%w: set database.enabled", usecase.ErrHistoryDisabled)
	}
	return usecase.NewEvaluationUsecase(nil, nil, runRepo, recordRepo, log), nil
}

// close releases connections opened by a subcommand
func (c *commandContext) close() {
	if c.redis != nil {
		_ = c.redis.Close()
		c.redis = nil
	}
	if c.db != nil {
		_ = database.Close(c.db)
		c.db = nil
	}
	if c.log != nil {
		_ = c.log.Sync()
	}
}
