// pkg/provision/provisioner.go

package provision

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"docpal/pkg/assistant"
)

// Provisioner is the only code path that creates assistant resources, so
// every tenant's assistant is born with the same Config.
//
// List-then-create is not atomic against the service, so creation is
// serialized per tenant with an in-process keyed mutex. The HTTP client
// additionally treats an "already exists" conflict as success, which keeps
// multi-instance deployments from racing each other.
type Provisioner struct {
	client assistant.Client
	cfg    assistant.Config
	log    *zap.Logger

	// locks grows with the tenant population and is never pruned. A mutex
	// per account local part stays small at this service's scale; revisit
	// if tenants ever number in the millions.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(client assistant.Client, cfg assistant.Config, log *zap.Logger) *Provisioner {
	return &Provisioner{
		client: client,
		cfg:    cfg,
		log:    log,
		locks:  map[string]*sync.Mutex{},
	}
}

func (p *Provisioner) tenantLock(tenant string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[tenant]
	if !ok {
		l = &sync.Mutex{}
		p.locks[tenant] = l
	}
	return l
}

// Ensure returns a handle to the tenant's assistant, creating it on first
// use. An existing assistant is returned as-is: config is fixed at creation
// time and a later Ensure never updates it.
func (p *Provisioner) Ensure(ctx context.Context, tenant string) (assistant.Handle, error) {
	l := p.tenantLock(tenant)
	l.Lock()
	defer l.Unlock()

	names, err := p.client.ListAssistants(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == tenant {
			return p.client.Assistant(tenant), nil
		}
	}

	p.log.Info("creating assistant", zap.String("tenant", tenant))
	if err := p.client.CreateAssistant(ctx, tenant, p.cfg); err != nil {
		return nil, err
	}
	return p.client.Assistant(tenant), nil
}
