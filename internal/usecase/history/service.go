package history

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domhist "github.com/kailas-cloud/sigimsae/internal/domain/history"
	"github.com/kailas-cloud/sigimsae/internal/metrics"
)

// Service keeps the search history in memory and mirrors it to a Repository.
// Persistence is best effort: failures are logged and the in-memory list stays authoritative.
type Service struct {
	mu     sync.Mutex
	state  domhist.History
	repo   Repository
	logger *zap.Logger
}

// New creates a history service. repo can be nil for a purely in-memory history.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Load replaces the in-memory list with the persisted one.
// On a read failure the history starts empty and the error is returned.
func (s *Service) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	entries, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		metrics.HistoryPersistErrorsTotal.WithLabelValues("load").Inc()
		s.state = domhist.New(nil)
		return fmt.Errorf("load history: %w", err)
	}
	s.state = domhist.New(entries)
	return nil
}

// Add records a query. Blank queries are ignored and report false.
func (s *Service) Add(ctx context.Context, query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.state.Add(query)
	if !ok {
		return false
	}
	s.state = next
	s.persist(ctx, next.Entries())
	return true
}

// List returns a copy of the history, most recent first.
func (s *Service) List(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Entries()
}

// Matching returns entries containing term, case-insensitively.
func (s *Service) Matching(_ context.Context, term string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Matching(term)
}

// Clear empties the history and removes the persisted list.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domhist.New(nil)
	if s.repo == nil {
		return
	}
	if err := s.repo.Clear(ctx); err != nil {
		metrics.HistoryPersistErrorsTotal.WithLabelValues("clear").Inc()
		s.logger.Warn("failed to clear persisted search history", zap.Error(err))
	}
}

// persist must be called with mu held so saves land in mutation order.
func (s *Service) persist(ctx context.Context, entries []string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, entries); err != nil {
		metrics.HistoryPersistErrorsTotal.WithLabelValues("save").Inc()
		s.logger.Warn("failed to persist search history", zap.Error(err))
	}
}
