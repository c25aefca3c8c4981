package language

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// DefaultLang is the code every unresolvable language falls back to.
const DefaultLang = "en"

// Constructor builds a fresh ruleset.
type Constructor func() Ruleset

// Registry maps language codes to ruleset constructors.
type Registry struct {
	mu     sync.RWMutex
	langs  map[string]Constructor
	logger *slog.Logger
}

// NewRegistry returns a registry holding the built-in languages.
func NewRegistry() *Registry {
	r := &Registry{
		langs:  make(map[string]Constructor),
		logger: slog.Default().With("component", "language"),
	}
	r.Register(DefaultLang, English)
	for code := range snowballLanguages {
		code := code
		r.Register(code, func() Ruleset { return Snowball(code) })
	}
	return r
}

// Register adds or replaces the constructor for code.
func (r *Registry) Register(code string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.langs[code] = c
}

// Codes lists the registered language codes in sorted order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.langs))
	for code := range r.langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Resolve returns the ruleset for code. It tries the exact code, then the code
// cut at its first locale separator, then English. It never fails.
func (r *Registry) Resolve(code string) Ruleset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.langs[code]; ok {
		return c()
	}
	if i := strings.IndexAny(code, "_-"); i > 0 {
		if c, ok := r.langs[code[:i]]; ok {
			r.logger.Debug("language resolved by base code", "requested", code, "resolved", code[:i])
			return c()
		}
	}
	if c, ok := r.langs[DefaultLang]; ok {
		if code != "" {
			r.logger.Info("unknown search language, using default", "requested", code, "resolved", DefaultLang)
		}
		return c()
	}
	return English()
}
