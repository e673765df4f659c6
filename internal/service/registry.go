package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
)

// ErrSessionNotFound is returned for unknown or deleted session ids.
var ErrSessionNotFound = errors.New("session: not found")

// PointsSource supplies the loyalty balance a new session starts with.
type PointsSource interface {
	AvailablePoints(ctx context.Context, userID string) (int64, bool, error)
}

// Registry owns the live sessions. Sessions share nothing but the read-only
// catalog; each one is locked independently while an operation runs.
type Registry struct {
	mu            sync.RWMutex
	sessions      map[string]*sessionEntry
	catalog       *catalog.Catalog
	points        PointsSource
	defaultPoints int64
	newID         func() string
	logger        *zap.Logger
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

type RegistryDeps struct {
	Catalog       *catalog.Catalog
	Points        PointsSource
	DefaultPoints int64
	NewID         func() string
	Logger        *zap.Logger
}

func NewRegistry(deps RegistryDeps) (*Registry, error) {
	if deps.Catalog == nil {
		return nil, errors.New("session registry: catalog is required")
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions:      make(map[string]*sessionEntry),
		catalog:       deps.Catalog,
		points:        deps.Points,
		defaultPoints: deps.DefaultPoints,
		newID:         newID,
		logger:        logger,
	}, nil
}

// Create starts a new session. When userID is set and a points source is
// configured, the session is seeded with that user's balance; otherwise the
// default balance is used.
func (r *Registry) Create(ctx context.Context, userID string) (View, error) {
	available := r.defaultPoints
	if userID != "" && r.points != nil {
		balance, found, err := r.points.AvailablePoints(ctx, userID)
		if err != nil {
			return View{}, fmt.Errorf("load points for %s: %w", userID, err)
		}
		if found {
			available = balance
		}
	}

	id := r.newID()
	session, err := NewSession(SessionDeps{
		ID:              id,
		Catalog:         r.catalog,
		AvailablePoints: available,
		Logger:          r.logger,
	})
	if err != nil {
		return View{}, err
	}

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{session: session}
	r.mu.Unlock()

	r.logger.Info("session created", zap.String("session_id", id), zap.Int64("available_points", available))
	return session.View(), nil
}

// Do runs fn with exclusive access to the session and returns its view
// after fn completes.
func (r *Registry) Do(id string, fn func(*Session) error) (View, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return View{}, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if fn != nil {
		if err := fn(entry.session); err != nil {
			return View{}, err
		}
	}
	return entry.session.View(), nil
}

func (r *Registry) Get(id string) (View, error) {
	return r.Do(id, nil)
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}
