package provisioning

import (
	"sync"

	"github.com/rpx-platform/ecsctl/internal/stack"
)

// Deduplicator ensures shared, environment-scoped units are acted on
// at most once per invocation, even when several applications in a
// batch reference the same unit. Scope is a single invocation; across
// invocations the backend's create-or-update idempotency takes over.
type Deduplicator struct {
	mu          sync.Mutex
	provisioned map[string]OutputMap
	deleted     map[string]bool
}

// NewDeduplicator creates an empty invocation-scoped deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		provisioned: make(map[string]OutputMap),
		deleted:     make(map[string]bool),
	}
}

func dedupKey(environment string, kind stack.Kind) string {
	return environment + "|" + string(kind)
}

// Provision runs fn unless the (environment, kind) pair was already
// provisioned in this invocation, in which case the cached outputs are
// returned and hit is true. The lock is held across the check and fn
// so concurrent callers cannot both provision.
func (d *Deduplicator) Provision(environment string, kind stack.Kind, fn func() (OutputMap, error)) (outputs OutputMap, hit bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := dedupKey(environment, kind)
	if cached, ok := d.provisioned[key]; ok {
		return cached.Clone(), true, nil
	}

	outputs, err = fn()
	if err != nil {
		return nil, false, err
	}
	d.provisioned[key] = outputs.Clone()
	return outputs, false, nil
}

// Delete runs fn unless the pair was already deleted in this
// invocation, in which case hit is true and fn is skipped.
func (d *Deduplicator) Delete(environment string, kind stack.Kind, fn func() error) (hit bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := dedupKey(environment, kind)
	if d.deleted[key] {
		return true, nil
	}

	if err := fn(); err != nil {
		return false, err
	}
	d.deleted[key] = true
	return false, nil
}
