package lesson

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

// memLessons — хранилище занятий в памяти с той же семантикой выборок, что и PostgreSQL.
type memLessons struct {
	mu      sync.Mutex
	seq     int
	lessons map[string]models.Lesson
	clients map[string]*models.Client
	window  [2]time.Time
}

func newMemLessons(clients ...*models.Client) *memLessons {
	m := &memLessons{lessons: map[string]models.Lesson{}, clients: map[string]*models.Client{}}
	for _, c := range clients {
		m.clients[c.ID] = c
	}
	return m
}

func (m *memLessons) CreateLesson(_ context.Context, l models.Lesson) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	l.ID = ident.New()
	l.CreatedAt = base.Add(time.Duration(m.seq) * time.Second)
	l.UpdatedAt = l.CreatedAt
	m.lessons[l.ID] = l
	return &l, nil
}

func (m *memLessons) GetLesson(_ context.Context, id string) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &l, nil
}

func (m *memLessons) UpdateLesson(_ context.Context, l models.Lesson) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lessons[l.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	m.lessons[l.ID] = l
	return &l, nil
}

func (m *memLessons) RemoveLesson(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lessons[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.lessons, id)
	return nil
}

func (m *memLessons) ListLessons(_ context.Context, f models.LessonFilter) ([]*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Lesson
	for _, l := range m.lessons {
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.ClientID != "" && l.ClientID != f.ClientID {
			continue
		}
		if f.CompanyID != "" {
			c, ok := m.clients[l.ClientID]
			if !ok || c.CompanyID != f.CompanyID {
				continue
			}
		}
		if f.Start != nil && l.Start.Before(*f.Start) {
			continue
		}
		if f.End != nil && !l.Start.Before(*f.End) {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (m *memLessons) ListForOverlap(_ context.Context, userID, clientID string, from, to time.Time) ([]*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.window = [2]time.Time{from, to}
	var out []*models.Lesson
	for _, l := range m.lessons {
		if l.UserID != userID && l.ClientID != clientID {
			continue
		}
		if l.Start.Before(from) || !l.Start.Before(to) {
			continue
		}
		l := l
		out = append(out, &l)
	}
	return out, nil
}

type directory struct {
	clients map[string]*models.Client
	users   map[string]*models.User
}

func (d directory) GetClient(_ context.Context, id string) (*models.Client, error) {
	c, ok := d.clients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (d directory) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Мок для EventPublisher
type EventsMock struct {
	mock.Mock
}

func (m *EventsMock) Publish(ctx context.Context, eventType string, l *models.Lesson) error {
	args := m.Called(ctx, eventType, l)
	return args.Error(0)
}
