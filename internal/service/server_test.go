package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/sharezin/internal/auth"
	"github.com/mmynk/sharezin/internal/metrics"
	"github.com/mmynk/sharezin/internal/middleware"
	"github.com/mmynk/sharezin/internal/notify"
	"github.com/mmynk/sharezin/internal/plan"
	"github.com/mmynk/sharezin/internal/storage/sqlite"
	"github.com/mmynk/sharezin/pkg/api"
)

type testEnv struct {
	server *httptest.Server
	store  *sqlite.SQLiteStore
	hub    *notify.Hub
	reg    *prometheus.Registry
}

type testUser struct {
	ID            string
	Name          string
	receipts      *api.ReceiptServiceClient
	groups        *api.GroupServiceClient
	notifications *api.NotificationServiceClient
	auth          *api.AuthServiceClient
}

// setupTestServer wires every service over a fresh SQLite database.
func setupTestServer(t *testing.T, limits plan.Limits) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	hub := notify.NewHub(64, m)
	hub.Start(context.Background())

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	required := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	receipts := NewReceiptService(store, notify.NewDispatcher(store, hub, m), ReceiptConfig{
		Limits:             limits,
		InviteCodeLength:   6,
		InviteCodeAttempts: 5,
		Metrics:            m,
	})

	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default()),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(NewReceiptServiceHandler(receipts, required))
	mux.Handle(NewGroupServiceHandler(NewGroupService(store), required))
	mux.Handle(NewNotificationServiceHandler(NewNotificationService(store, hub), required))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Stop()
		server.Close()
		store.Close()
	})

	return &testEnv{server: server, store: store, hub: hub, reg: reg}
}

// register creates an account and returns clients authenticated as it.
func (e *testEnv) register(t *testing.T, name string) *testUser {
	t.Helper()

	authClient := api.NewAuthServiceClient(e.server.Client(), e.server.URL)
	resp, err := authClient.Register.CallUnary(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       strings.ToLower(name) + "@example.com",
		DisplayName: name,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register %s failed: %v", name, err)
	}

	opt := connect.WithInterceptors(middleware.BearerToken(resp.Msg.Token))
	return &testUser{
		ID:            resp.Msg.User.ID,
		Name:          name,
		receipts:      api.NewReceiptServiceClient(e.server.Client(), e.server.URL, opt),
		groups:        api.NewGroupServiceClient(e.server.Client(), e.server.URL, opt),
		notifications: api.NewNotificationServiceClient(e.server.Client(), e.server.URL, opt),
		auth:          api.NewAuthServiceClient(e.server.Client(), e.server.URL, opt),
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
