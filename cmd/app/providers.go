package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/infra/config"
	"github.com/yanqian/faq-chatbot/internal/infra/faqstore"
	"github.com/yanqian/faq-chatbot/internal/infra/kbsource"
	"github.com/yanqian/faq-chatbot/internal/infra/lemma"
	"github.com/yanqian/faq-chatbot/internal/infra/querylog"
)

const knowledgeLoadTimeout = 10 * time.Second

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		TopRecommendations: cfg.FAQ.TopRecommendations,
		RecentQueryLimit:   cfg.FAQ.RecentQueryLimit,
	}
}

func provideLemmatizer(cfg *config.Config, logger *slog.Logger) (faq.Lemmatizer, error) {
	if !cfg.FAQ.Lemmatize {
		logger.Info("lemmatization disabled, using identity lemmatizer")
		return faq.IdentityLemmatizer{}, nil
	}
	lemmatizer, err := lemma.NewEnglish()
	if err != nil {
		return nil, err
	}
	return lemmatizer, nil
}

// providePostgresPool returns nil when no DSN is configured or the database
// cannot be reached. The cleanup closes the pool on shutdown.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.FAQ.Postgres.DSN)
	if dsn == "" {
		logger.Info("faq postgres dsn not set")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn", "error", err)
		return nil, noop
	}
	if cfg.FAQ.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.FAQ.Postgres.MaxConns
	}
	if cfg.FAQ.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.FAQ.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed", "error", err)
		pool.Close()
		return nil, noop
	}
	logger.Info("faq postgres pool ready")
	return pool, pool.Close
}

func provideKnowledgeSource(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (faq.KnowledgeSource, error) {
	knowledge := cfg.FAQ.Knowledge
	switch knowledge.Source {
	case config.SourceFile:
		logger.Info("faq knowledge base from file", "path", knowledge.Path)
		return kbsource.NewFileSource(knowledge.Path), nil
	case config.SourceS3:
		store := knowledge.ObjectStore
		logger.Info("faq knowledge base from object store", "bucket", store.Bucket, "key", store.Key)
		return kbsource.NewObjectStoreSource(kbsource.ObjectStoreOptions{
			Endpoint:  store.Endpoint,
			AccessKey: store.AccessKey,
			SecretKey: store.SecretKey,
			Region:    store.Region,
			Bucket:    store.Bucket,
			Key:       store.Key,
		}, logger)
	case config.SourcePostgres:
		if pool == nil {
			return nil, fmt.Errorf("postgres knowledge source requires a reachable database")
		}
		logger.Info("faq knowledge base from postgres")
		return kbsource.NewPostgresSource(pool), nil
	default:
		return faq.BuiltinSource{}, nil
	}
}

func provideKnowledgeBase(source faq.KnowledgeSource, logger *slog.Logger) (*faq.KnowledgeBase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), knowledgeLoadTimeout)
	defer cancel()
	kb, err := faq.LoadKnowledgeBase(ctx, source)
	if err != nil {
		return nil, err
	}
	logger.Info("faq knowledge base loaded", "entries", kb.Len())
	return kb, nil
}

func provideQueryLogRepository(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) faq.QueryLogRepository {
	if pool == nil {
		logger.Info("using memory query log", "capacity", cfg.FAQ.QueryLogCapacity)
		return querylog.NewMemoryRepository(cfg.FAQ.QueryLogCapacity)
	}
	logger.Info("faq postgres query log enabled")
	return querylog.NewPostgresRepository(pool)
}

// provideFAQStore falls back to the memory store when valkey is disabled or
// unreachable. The cleanup closes the valkey client on shutdown.
func provideFAQStore(cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	noop := func() {}
	if !cfg.FAQ.Redis.Enabled {
		return faqstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return faqstore.NewMemoryStore(), noop
	}
	logger.Info("faq valkey store enabled", "addr", cfg.FAQ.Redis.Addr)
	return faqstore.NewValkeyStore(client, cfg.FAQ.Redis.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.FAQ.Redis.Addr, "://") {
		return valkey.ParseURL(cfg.FAQ.Redis.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.FAQ.Redis.Addr}}, nil
}
