package usecases

import (
	"context"
	"sync"

	"github.com/novastream-inc/novastream/internal/domain/subscription"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

// memSubscriptionRepository is an in-memory SubscriptionRepository with
// error injection for exercising failure paths.
type memSubscriptionRepository struct {
	mu     sync.RWMutex
	subs   []*subscription.Subscription
	nextID uint

	createError error
	getError    error
	updateError error
}

func newMemSubscriptionRepository() *memSubscriptionRepository {
	return &memSubscriptionRepository{}
}

func (m *memSubscriptionRepository) Add(sub *subscription.Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, sub)
}

func (m *memSubscriptionRepository) SetCreateError(err error) { m.createError = err }
func (m *memSubscriptionRepository) SetGetError(err error)    { m.getError = err }
func (m *memSubscriptionRepository) SetUpdateError(err error) { m.updateError = err }

func (m *memSubscriptionRepository) CreateIfNoActive(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}

	for _, existing := range m.subs {
		if existing.UserName() == sub.UserName() && existing.IsActive() {
			return subscription.ErrDuplicateActive
		}
	}

	if sub.ID() == 0 {
		m.nextID++
		if err := sub.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.subs = append(m.subs, sub)
	return nil
}

func (m *memSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	for _, sub := range m.subs {
		if sub.ID() == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (m *memSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	for _, sub := range m.subs {
		if sub.SID() == sid {
			return sub, nil
		}
	}
	return nil, nil
}

func (m *memSubscriptionRepository) GetByUserName(ctx context.Context, userName string) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	var result []*subscription.Subscription
	for i := len(m.subs) - 1; i >= 0; i-- {
		if m.subs[i].UserName() == userName {
			result = append(result, m.subs[i])
		}
	}
	return result, nil
}

func (m *memSubscriptionRepository) GetByDuration(ctx context.Context, months int) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	var result []*subscription.Subscription
	for i := len(m.subs) - 1; i >= 0; i-- {
		if m.subs[i].Duration() == months {
			result = append(result, m.subs[i])
		}
	}
	return result, nil
}

func (m *memSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	for i, existing := range m.subs {
		if existing.ID() == sub.ID() {
			m.subs[i] = sub
			return nil
		}
	}
	return nil
}

// testLogger discards all log output.
type testLogger struct{}

func newTestLogger() *testLogger { return &testLogger{} }

func (l *testLogger) Debugw(msg string, keysAndValues ...any) {}
func (l *testLogger) Infow(msg string, keysAndValues ...any)  {}
func (l *testLogger) Warnw(msg string, keysAndValues ...any)  {}
func (l *testLogger) Errorw(msg string, keysAndValues ...any) {}

func (l *testLogger) With(args ...any) logger.Interface { return l }
