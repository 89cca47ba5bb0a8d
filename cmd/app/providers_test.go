package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-chatbot/internal/infra/config"
	"github.com/yanqian/faq-chatbot/internal/infra/faqstore"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideFAQStoreMemoryWhenRedisDisabled(t *testing.T) {
	cfg := &config.Config{}

	store, cleanup := provideFAQStore(cfg, newTestLogger())
	require.NotNil(t, cleanup)
	require.IsType(t, &faqstore.MemoryStore{}, store)
	cleanup()
}

func TestProvideFAQStoreFallsBackWhenValkeyUnreachable(t *testing.T) {
	cfg := &config.Config{}
	cfg.FAQ.Redis.Enabled = true
	cfg.FAQ.Redis.Addr = "127.0.0.1:1"

	store, cleanup := provideFAQStore(cfg, newTestLogger())
	require.NotNil(t, cleanup)
	require.IsType(t, &faqstore.MemoryStore{}, store)
	cleanup()
}

func TestProvidePostgresPoolWithoutDSN(t *testing.T) {
	pool, cleanup := providePostgresPool(&config.Config{}, newTestLogger())
	require.Nil(t, pool)
	require.NotNil(t, cleanup)
	cleanup()
}
