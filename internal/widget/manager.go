package widget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/config"
)

// Handle is the process-wide card widget. Exactly one exists at a time,
// attached to exactly one mount point. Checkout surfaces share it by
// reference; tearing down a surface never detaches the widget.
type Handle struct {
	card         Card
	payments     PaymentsClient
	mountPointID string
}

// MountPointID reports where the widget is attached.
func (h *Handle) MountPointID() string {
	return h.mountPointID
}

// Manager serializes widget initialization. Any number of concurrent or
// sequential EnsureReady calls observe at most one script load and one
// attach: a call arriving while initialization is in flight waits for that
// attempt instead of starting its own. A failed attempt is not cached;
// the next call retries from a clean slate. A successful attempt is sticky
// for the life of the process.
type Manager struct {
	loader Loader
	mounts MountRegistry
	cfg    config.WidgetConfig
	appID  string
	logger *slog.Logger

	mu    sync.Mutex
	ready *Handle
	init  *initAttempt
}

type initAttempt struct {
	done   chan struct{}
	handle *Handle
	err    error
}

func NewManager(loader Loader, mounts MountRegistry, appID string, cfg config.WidgetConfig, logger *slog.Logger) *Manager {
	return &Manager{
		loader: loader,
		mounts: mounts,
		cfg:    cfg,
		appID:  appID,
		logger: logger,
	}
}

// EnsureReady returns the shared widget handle, initializing it if needed.
// The ctx only governs this caller's wait: an abandoned caller does not
// cancel an initialization other callers may still be waiting on.
func (m *Manager) EnsureReady(ctx context.Context, mountPointID string) (*Handle, error) {
	m.mu.Lock()
	if m.ready != nil {
		h := m.ready
		m.mu.Unlock()
		return h, nil
	}

	if m.init != nil {
		attempt := m.init
		m.mu.Unlock()
		select {
		case <-attempt.done:
			return attempt.handle, attempt.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	attempt := &initAttempt{done: make(chan struct{})}
	m.init = attempt
	m.mu.Unlock()

	// The attempt runs on a context detached from the caller that started
	// it. A checkout surface torn down mid-flight stops waiting, but the
	// shared initialization keeps going for anyone who joins later.
	go m.runInit(context.WithoutCancel(ctx), attempt, mountPointID)

	select {
	case <-attempt.done:
		return attempt.handle, attempt.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) runInit(ctx context.Context, attempt *initAttempt, mountPointID string) {
	handle, err := m.initialize(ctx, mountPointID)

	m.mu.Lock()
	if err == nil {
		m.ready = handle
	}
	m.init = nil
	m.mu.Unlock()

	attempt.handle = handle
	attempt.err = err
	close(attempt.done)

	if err != nil {
		m.logger.Error("widget initialization failed", "mount_point", mountPointID, "error", err)
		return
	}
	m.logger.Info("card widget attached", "mount_point", mountPointID)
}

func (m *Manager) initialize(ctx context.Context, mountPointID string) (*Handle, error) {
	if m.appID == "" {
		return nil, ErrConfigMissing
	}

	sdk, err := m.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSDKLoad, err)
	}

	payments, err := sdk.Payments(m.appID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSDKLoad, err)
	}

	mount, err := m.awaitMountPoint(ctx, mountPointID)
	if err != nil {
		return nil, err
	}

	// Leftover markup from an earlier, unrelated attach attempt confuses
	// the third-party attach, so the mount is wiped first and pending UI
	// updates are given a moment to settle.
	mount.Clear()
	if m.cfg.SettleDelay > 0 {
		select {
		case <-time.After(m.cfg.SettleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	card, err := payments.Card(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating card widget: %w", err)
	}

	if err := card.Attach(ctx, mountPointID); err != nil {
		return nil, fmt.Errorf("attaching card widget: %w", err)
	}

	return &Handle{
		card:         card,
		payments:     payments,
		mountPointID: mountPointID,
	}, nil
}

// awaitMountPoint polls for the mount point with a bounded attempt budget.
// No attach is ever tried after the budget is exhausted.
func (m *Manager) awaitMountPoint(ctx context.Context, id string) (MountPoint, error) {
	attempts := m.cfg.MountPollAttempts
	if attempts <= 0 {
		attempts = 20
	}
	interval := m.cfg.MountPollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	for i := 0; i < attempts; i++ {
		if mount, ok := m.mounts.Lookup(id); ok {
			return mount, nil
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, ErrMountTimeout
}
