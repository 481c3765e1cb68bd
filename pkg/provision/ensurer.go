package provision

import (
	"context"

	"docpal/pkg/assistant"
)

// Ensurer is the capability services consume to obtain a tenant's assistant
// handle before acting on it.
type Ensurer interface {
	Ensure(ctx context.Context, tenant string) (assistant.Handle, error)
}

var _ Ensurer = (*Provisioner)(nil)
