package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/polkiloo/deliverypro/internal/app"
	"github.com/polkiloo/deliverypro/internal/config"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
	"github.com/polkiloo/deliverypro/internal/storage"
	"github.com/polkiloo/deliverypro/internal/test"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:      "127.0.0.1:0",
		JWTSecret:       "secret",
		AcceptDelay:     time.Hour,
		ReplyDelay:      time.Hour,
		BaseFee:         decimal.NewFromInt(25),
		PerKmRate:       decimal.NewFromInt(15),
		WorkerPoolSize:  1,
		EventBuffer:     4,
		ShutdownTimeout: time.Second,
	}
}

func TestModuleComposesMemoryGraph(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade  *app.DeliveryFacade
		engine  *gin.Engine
		backend storage.Backend
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(config.Args{}),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(logger),
		),
		fx.Populate(&facade, &engine, &backend),
	)
	require.NoError(t, fxApp.Err())

	require.NoError(t, fxApp.Start(context.Background()))
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	require.NotNil(t, facade)
	assert.Equal(t, storage.BackendMemory, backend)

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "tops1")
}

func TestModuleAcceptsRepositoryReplacements(t *testing.T) {
	users := test.NewUserRepositoryStub()

	var facade *app.DeliveryFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(config.Args{}),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
			fx.Replace(fx.Annotate(users, fx.As(new(repository.UserRepository)))),
		),
		fx.Populate(&facade),
	)
	require.NoError(t, fxApp.Err())

	_, err := facade.Register(context.Background(), "alice", "secret-pass", "")
	require.NoError(t, err)
	stored, err := users.GetByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Login)
}
