package placeholder

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/doeshing/agpt/internal/ports"
)

// ErrEmptyCatalog is returned when no usable example prompt is configured.
var ErrEmptyCatalog = errors.New("placeholder catalog is empty")

// Picker draws example prompts uniformly from a fixed catalog.
type Picker struct {
	catalog []string
	mu      sync.Mutex
	rng     *rand.Rand
}

// NewPicker builds a picker over the non-blank entries of catalog.
// A nil src seeds from the runtime's random source.
func NewPicker(catalog []string, src rand.Source) (*Picker, error) {
	entries := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Picker{catalog: entries, rng: rand.New(src)}, nil
}

// Pick implements ports.PlaceholderPicker.
func (p *Picker) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog[p.rng.IntN(len(p.catalog))]
}

// Catalog returns a copy of the entries Pick draws from.
func (p *Picker) Catalog() []string {
	out := make([]string, len(p.catalog))
	copy(out, p.catalog)
	return out
}

// Contains reports whether prompt is a catalog entry.
func (p *Picker) Contains(prompt string) bool {
	for _, entry := range p.catalog {
		if entry == prompt {
			return true
		}
	}
	return false
}

var _ ports.PlaceholderPicker = (*Picker)(nil)
