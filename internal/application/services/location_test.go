package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/application/services"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/square"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocationService_Resolve(t *testing.T) {
	t.Run("returns first active location", func(t *testing.T) {
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				return []square.Location{
					{ID: "L-1", Name: "Closed Stall", Status: "INACTIVE"},
					{ID: "L-2", Name: "Workshop", Status: "ACTIVE"},
					{ID: "L-3", Name: "Second Workshop", Status: "ACTIVE"},
				}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		loc, err := svc.Resolve(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "L-2", loc.ID)
		assert.Equal(t, "Workshop", loc.Name)
	})

	t.Run("no active location maps to not found", func(t *testing.T) {
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				return []square.Location{{ID: "L-1", Status: "INACTIVE"}}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		_, err := svc.Resolve(context.Background())

		svcErr, ok := application.IsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, application.ErrCodeNoActiveLocation, svcErr.Code)
		assert.Equal(t, "No active locations found", svcErr.Message)
		assert.Equal(t, 404, svcErr.HTTPStatus)
	})

	t.Run("missing credentials map to not configured", func(t *testing.T) {
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				return nil, square.ErrNotConfigured
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		_, err := svc.Resolve(context.Background())

		svcErr, ok := application.IsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, application.ErrCodeNotConfigured, svcErr.Code)
	})

	t.Run("memoizes success for the life of the service", func(t *testing.T) {
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				return []square.Location{{ID: "L-1", Status: "ACTIVE"}}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		for i := 0; i < 5; i++ {
			loc, err := svc.Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "L-1", loc.ID)
		}
		assert.Equal(t, 1, mock.ListLocationsCalls)
	})

	t.Run("never memoizes failure", func(t *testing.T) {
		calls := 0
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				calls++
				if calls == 1 {
					return nil, &square.APIError{StatusCode: 500}
				}
				return []square.Location{{ID: "L-1", Status: "ACTIVE"}}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		_, err := svc.Resolve(context.Background())
		require.Error(t, err)

		loc, err := svc.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "L-1", loc.ID)
		assert.Equal(t, 2, calls)
	})

	t.Run("concurrent callers share one upstream fetch", func(t *testing.T) {
		release := make(chan struct{})
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				<-release
				return []square.Location{{ID: "L-1", Status: "ACTIVE"}}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		const callers = 10
		var wg sync.WaitGroup
		results := make([]*string, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				loc, err := svc.Resolve(context.Background())
				if assert.NoError(t, err) {
					results[i] = &loc.ID
				}
			}(i)
		}

		// Give every goroutine time to either start the fetch or park on it.
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, 1, mock.ListLocationsCalls)
		for _, id := range results {
			require.NotNil(t, id)
			assert.Equal(t, "L-1", *id)
		}
	})

	t.Run("waiting caller honors context cancellation", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				close(started)
				<-release
				return []square.Location{{ID: "L-1", Status: "ACTIVE"}}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		go svc.Resolve(context.Background()) //nolint:errcheck
		<-started

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Resolve(ctx)
		assert.ErrorIs(t, err, context.Canceled)

		close(release)
	})

	t.Run("cancelling the caller that started the fetch leaves it running", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		mock := &square.MockClient{
			ListLocationsFn: func(ctx context.Context) ([]square.Location, error) {
				close(started)
				<-release
				return []square.Location{{ID: "L-1", Status: "ACTIVE"}}, nil
			},
		}
		svc := services.NewLocationService(mock, discardLogger())

		ownerCtx, cancel := context.WithCancel(context.Background())
		ownerErr := make(chan error, 1)
		go func() {
			_, err := svc.Resolve(ownerCtx)
			ownerErr <- err
		}()
		<-started

		waiterDone := make(chan struct{})
		var waiterID string
		var waiterErr error
		go func() {
			defer close(waiterDone)
			loc, err := svc.Resolve(context.Background())
			if err == nil {
				waiterID = loc.ID
			}
			waiterErr = err
		}()

		cancel()
		assert.ErrorIs(t, <-ownerErr, context.Canceled)

		close(release)
		<-waiterDone

		require.NoError(t, waiterErr)
		assert.Equal(t, "L-1", waiterID)
		assert.Equal(t, 1, mock.ListLocationsCalls)
	})
}
