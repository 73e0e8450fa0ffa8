package cache

import (
	"sync"

	"github.com/rujira-labs/finsdk/domain"
)

// PairAddresses is the local pair key to contract address table.
// It never expires entries: contract addresses are stable for a pair.
type PairAddresses struct {
	mu        sync.RWMutex
	addresses map[string]string
}

// NewPairAddresses creates a new pair address table seeded with the given static pairs.
func NewPairAddresses(staticPairs []domain.StaticPair) *PairAddresses {
	p := &PairAddresses{
		addresses: make(map[string]string, len(staticPairs)),
	}
	for _, pair := range staticPairs {
		p.addresses[domain.PairKey(pair.BaseAsset, pair.QuoteAsset)] = pair.ContractAddress
	}
	return p
}

// Set stores the address for the pair key.
// Returns true if the table changed.
func (p *PairAddresses) Set(key string, address string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.addresses[key]; ok && existing == address {
		return false
	}
	p.addresses[key] = address
	return true
}

// Get returns the address for the pair key.
func (p *PairAddresses) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	address, ok := p.addresses[key]
	return address, ok
}

// Load merges pairs into the table without overwriting existing keys.
func (p *PairAddresses) Load(pairs map[string]string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, address := range pairs {
		if _, ok := p.addresses[key]; !ok {
			p.addresses[key] = address
		}
	}
}

// Snapshot returns a copy of the table.
func (p *PairAddresses) Snapshot() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := make(map[string]string, len(p.addresses))
	for key, address := range p.addresses {
		snapshot[key] = address
	}
	return snapshot
}

// Len returns the number of pairs.
func (p *PairAddresses) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.addresses)
}
