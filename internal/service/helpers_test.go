package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/purposeful/purposeful-backend/internal/repository"
	"github.com/purposeful/purposeful-backend/internal/repository/postgres"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/purposeful/purposeful-backend/internal/testutil"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	repos    *repository.Repositories
	services *service.Services
	counter  *memoryCounter
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(db)
	counter := newMemoryCounter()
	notifier := &recordingNotifier{}

	services := service.NewServices(repos, testutil.TestConfig(), service.Integrations{
		Counter:  counter,
		Notifier: notifier,
	})

	return &testEnv{
		db:       db,
		repos:    repos,
		services: services,
		counter:  counter,
		notifier: notifier,
	}
}

// memoryCounter is an in-process ReactionCounter
type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: make(map[string]int64)}
}

func (c *memoryCounter) Increment(ctx context.Context, ideaID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[ideaID]++
	return nil
}

func (c *memoryCounter) Decrement(ctx context.Context, ideaID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[ideaID]--
	return nil
}

func (c *memoryCounter) Get(ctx context.Context, ideaID string) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, ok := c.counts[ideaID]
	return count, ok, nil
}

func (c *memoryCounter) Set(ctx context.Context, ideaID string, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[ideaID] = count
	return nil
}

func (c *memoryCounter) Delete(ctx context.Context, ideaID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, ideaID)
	return nil
}

type notification struct {
	userID  string
	msgType websocket.MessageType
	payload interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(userID string, msgType websocket.MessageType, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID: userID, msgType: msgType, payload: payload})
}

func (n *recordingNotifier) messages() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

func strPtr(s string) *string {
	return &s
}
