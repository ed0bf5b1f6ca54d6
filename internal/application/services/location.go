package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/square"
)

// LocationService resolves the merchant location charges are made against.
// The first successful resolution is memoized for the remainder of the
// process; failures are never cached, so the next call retries from
// scratch. At most one upstream fetch is in flight at a time; concurrent
// callers wait for it instead of issuing their own.
type LocationService struct {
	client square.Client
	logger *slog.Logger

	mu     sync.Mutex
	cached *domain.LocationHandle
	fetch  *locationFetch
}

type locationFetch struct {
	done chan struct{}
	loc  *domain.LocationHandle
	err  error
}

func NewLocationService(client square.Client, logger *slog.Logger) *LocationService {
	return &LocationService{
		client: client,
		logger: logger,
	}
}

func (s *LocationService) Resolve(ctx context.Context) (*domain.LocationHandle, error) {
	s.mu.Lock()
	if s.cached != nil {
		loc := s.cached
		s.mu.Unlock()
		return loc, nil
	}

	if s.fetch != nil {
		f := s.fetch
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.loc, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &locationFetch{done: make(chan struct{})}
	s.fetch = f
	s.mu.Unlock()

	// The fetch runs detached from the caller that started it, so a caller
	// abandoning its request mid-fetch does not poison the result for
	// everyone else waiting on it.
	go s.runFetch(context.WithoutCancel(ctx), f)

	select {
	case <-f.done:
		return f.loc, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *LocationService) runFetch(ctx context.Context, f *locationFetch) {
	f.loc, f.err = s.resolve(ctx)

	s.mu.Lock()
	if f.err == nil {
		s.cached = f.loc
	}
	s.fetch = nil
	s.mu.Unlock()

	close(f.done)
}

func (s *LocationService) resolve(ctx context.Context) (*domain.LocationHandle, error) {
	locations, err := s.client.ListLocations(ctx)
	if err != nil {
		if errors.Is(err, square.ErrNotConfigured) {
			s.logger.Error("location resolution failed: missing credentials")
			return nil, application.NewNotConfiguredError(err)
		}
		if apiErr, ok := square.IsAPIError(err); ok {
			s.logger.Error("upstream location listing failed",
				"status", apiErr.StatusCode,
				"body", string(apiErr.Body),
			)
			return nil, application.NewUpstreamError(err)
		}
		s.logger.Error("location request failed", "error", err)
		return nil, application.NewUpstreamError(err)
	}

	for _, loc := range locations {
		if loc.Status == domain.LocationStatusActive {
			return &domain.LocationHandle{
				ID:      loc.ID,
				Name:    loc.Name,
				Address: loc.Address,
				Status:  loc.Status,
			}, nil
		}
	}

	return nil, application.NewNoActiveLocationError()
}
