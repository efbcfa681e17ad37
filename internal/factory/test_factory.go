package factory

import (
	"time"

	"github.com/res5515/jcommune/internal/dependencies/mocks"
	"github.com/res5515/jcommune/internal/plugin"
	"github.com/res5515/jcommune/internal/services/session"
	"github.com/res5515/jcommune/internal/storage/memory"
	"github.com/res5515/jcommune/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Plugins can be registered on app.Plugins before exercising the
// authenticator.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	registry := plugin.NewRegistry()

	app := newWithDependencies(store, mockClock, registry, session.DefaultConfig(),
		"http://forum.test", testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}
