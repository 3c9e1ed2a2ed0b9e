package config

import "sync"

// Handle guards the shared config. Callers hold the lock only inside Read.
type Handle struct {
	mu  sync.Mutex
	cfg *Config
}

func NewHandle(cfg *Config) *Handle {
	return &Handle{cfg: cfg}
}

// Set replaces the config.
func (h *Handle) Set(cfg *Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
}

// Loaded reports whether a config is present.
func (h *Handle) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg != nil
}

// Read runs fn with the lock held. fn must not retain cfg.
func (h *Handle) Read(fn func(cfg *Config) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cfg == nil {
		return ErrNotLoaded
	}
	return fn(h.cfg)
}
