package widget

import (
	"context"
	"fmt"
	"sync"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/google/uuid"
)

// SimEnvironment is an in-process stand-in for the browser runtime: a
// loader that "evaluates" nothing and a mount registry whose mount points
// are created by whoever drives the simulation. The demo checkout binary
// runs against it; tests use it to exercise the manager without a browser.
type SimEnvironment struct {
	mu     sync.Mutex
	mounts map[string]*SimMountPoint

	LoadCount   int
	AttachCount int
}

func NewSimEnvironment() *SimEnvironment {
	return &SimEnvironment{
		mounts: make(map[string]*SimMountPoint),
	}
}

// CreateMountPoint registers a mount point, as the surrounding UI tree
// would when it renders the checkout surface.
func (e *SimEnvironment) CreateMountPoint(id string) *SimMountPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	mp := &SimMountPoint{id: id}
	e.mounts[id] = mp
	return mp
}

func (e *SimEnvironment) Lookup(id string) (MountPoint, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	mp, ok := e.mounts[id]
	return mp, ok
}

func (e *SimEnvironment) Load(ctx context.Context) (SDK, error) {
	e.mu.Lock()
	e.LoadCount++
	e.mu.Unlock()
	return &simSDK{env: e}, nil
}

type SimMountPoint struct {
	id string

	mu       sync.Mutex
	Cleared  int
	Attached bool
}

func (m *SimMountPoint) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cleared++
	m.Attached = false
}

type simSDK struct {
	env *SimEnvironment
}

func (s *simSDK) Payments(applicationID string) (PaymentsClient, error) {
	if applicationID == "" {
		return nil, fmt.Errorf("application ID is required")
	}
	return &simPayments{env: s.env}, nil
}

type simPayments struct {
	env *SimEnvironment
}

func (p *simPayments) Card(ctx context.Context) (Card, error) {
	return &simCard{env: p.env}, nil
}

type simCard struct {
	env *SimEnvironment
}

func (c *simCard) Attach(ctx context.Context, mountPointID string) error {
	c.env.mu.Lock()
	defer c.env.mu.Unlock()
	mp, ok := c.env.mounts[mountPointID]
	if !ok {
		return fmt.Errorf("mount point %q does not exist", mountPointID)
	}
	c.env.AttachCount++
	mp.mu.Lock()
	mp.Attached = true
	mp.mu.Unlock()
	return nil
}

// Tokenize yields a fresh synthetic nonce, mirroring the single-use
// contract of real tokens.
func (c *simCard) Tokenize(ctx context.Context) (domain.TokenResult, error) {
	return domain.TokenResult{
		Status: domain.TokenOK,
		Token:  "cnon:" + uuid.New().String(),
	}, nil
}
