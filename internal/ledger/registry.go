package ledger

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader builds the ledger of one account, typically from storage.
type Loader func(accountID int64) (*Ledger, error)

// Registry keeps one Ledger per account. Operations on one account are
// serialised by that account's ledger; different accounts never contend.
type Registry struct {
	mu      sync.RWMutex
	ledgers map[int64]*Ledger
	load    Loader
	group   singleflight.Group
}

func NewRegistry(load Loader) *Registry {
	return &Registry{
		ledgers: make(map[int64]*Ledger),
		load:    load,
	}
}

// Get returns the cached ledger for accountID, loading it on first use.
// Concurrent first loads of the same account share one Loader call.
func (r *Registry) Get(accountID int64) (*Ledger, error) {
	r.mu.RLock()
	l, ok := r.ledgers[accountID]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	v, err, _ := r.group.Do(strconv.FormatInt(accountID, 10), func() (any, error) {
		r.mu.RLock()
		cached, ok := r.ledgers[accountID]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := r.load(accountID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.ledgers[accountID] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Ledger), nil
}

// Put installs a ledger for accountID, replacing any cached one.
func (r *Registry) Put(accountID int64, l *Ledger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgers[accountID] = l
}

// Evict drops the cached ledger so the next Get reloads it.
func (r *Registry) Evict(accountID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ledgers, accountID)
}
