package rules

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/siripat/labelcheck/internal/model"
)

const tablesKey = "tables"

// Store loads the reference tables from disk and keeps the parsed result in
// an in-memory cache so batch runs parse each file once.
type Store struct {
	cfg   model.DataConfig
	cache *gocache.Cache

	mu sync.Mutex // serializes reloads after a cache miss
}

// NewStore creates a store over the configured data directory.
func NewStore(cfg model.DataConfig) *Store {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		cfg:   cfg,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Tables returns the parsed reference tables, loading them on first use.
func (s *Store) Tables() (*Tables, error) {
	if val, found := s.cache.Get(tablesKey); found {
		return val.(*Tables), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if val, found := s.cache.Get(tablesKey); found {
		return val.(*Tables), nil
	}

	tables, err := s.load()
	if err != nil {
		return nil, err
	}
	s.cache.Set(tablesKey, tables, gocache.DefaultExpiration)
	return tables, nil
}

// Invalidate drops the cached tables so the next Tables call reloads them.
func (s *Store) Invalidate() {
	s.cache.Delete(tablesKey)
}

func (s *Store) load() (*Tables, error) {
	path := func(name string) string { return filepath.Join(s.cfg.Dir, name) }

	listed, err := LoadClaims(path(s.cfg.ListedClaims))
	if err != nil {
		return nil, fmt.Errorf("loading listed claims: %w", err)
	}
	unlisted, err := LoadClaims(path(s.cfg.UnlistedClaims))
	if err != nil {
		return nil, fmt.Errorf("loading unlisted claims: %w", err)
	}
	disclaimers, err := LoadDisclaimers(path(s.cfg.Disclaimers))
	if err != nil {
		return nil, fmt.Errorf("loading disclaimers: %w", err)
	}
	servings, err := LoadServings(path(s.cfg.ServingSizes))
	if err != nil {
		return nil, fmt.Errorf("loading serving sizes: %w", err)
	}
	rdis, err := LoadRDIs(path(s.cfg.RDIs))
	if err != nil {
		return nil, fmt.Errorf("loading rdis: %w", err)
	}
	conditions, err := LoadConditions(path(s.cfg.ConditionLookup))
	if err != nil {
		return nil, fmt.Errorf("loading condition lookup: %w", err)
	}

	return &Tables{
		Listed:      listed,
		Unlisted:    unlisted,
		Disclaimers: disclaimers,
		Servings:    servings,
		RDIs:        rdis,
		Conditions:  conditions,
	}, nil
}
