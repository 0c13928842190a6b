package definition

import (
	"context"
	"errors"
	"sort"
	"sync"

	pkgerrors "github.com/pkg/errors"
)

// ErrUnknownProvider is returned when a definition names an unregistered provider.
var ErrUnknownProvider = errors.New("unknown option provider")

// OptionProvider produces select options at render time.
type OptionProvider func(ctx context.Context) ([]Option, error)

// OptionSource yields the options of a select input.
type OptionSource interface {
	Options(ctx context.Context) ([]Option, error)
}

// StaticOptions is a fixed, ordered option list.
type StaticOptions []Option

// Options implements OptionSource.
func (s StaticOptions) Options(context.Context) ([]Option, error) {
	return append([]Option(nil), s...), nil
}

// Options implements OptionSource. The provider is called on every resolution.
func (p OptionProvider) Options(ctx context.Context) ([]Option, error) {
	return p(ctx)
}

// Providers is the registry of named option providers.
type Providers struct {
	mu        sync.RWMutex
	providers map[string]OptionProvider
}

// NewProviders returns an empty provider registry.
func NewProviders() *Providers {
	return &Providers{providers: make(map[string]OptionProvider)}
}

// Register adds or replaces the provider called name.
func (p *Providers) Register(name string, provider OptionProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.providers[name] = provider
}

// Has reports whether a provider called name is registered.
func (p *Providers) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.providers[name]

	return ok
}

// Names returns the registered provider names, sorted.
func (p *Providers) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.providers))
	for name := range p.providers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Source returns the option source of def. A named provider wins over static
// options. Definitions without options get an empty static source.
func (p *Providers) Source(def Definition) (OptionSource, error) {
	if def.OptionsFrom == "" {
		return StaticOptions(def.Options), nil
	}

	p.mu.RLock()
	provider, ok := p.providers[def.OptionsFrom]
	p.mu.RUnlock()

	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownProvider, "%s: %q", def.Key, def.OptionsFrom)
	}

	return provider, nil
}

// Resolve returns the options of def.
func (p *Providers) Resolve(ctx context.Context, def Definition) ([]Option, error) {
	src, err := p.Source(def)
	if err != nil {
		return nil, err
	}

	opts, err := src.Options(ctx)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "resolve options of %s", def.Key)
	}

	return opts, nil
}

// Check verifies every provider named in reg is registered.
func (p *Providers) Check(reg *Registry) error {
	for _, def := range reg.Values() {
		if def.OptionsFrom == "" {
			continue
		}

		if !p.Has(def.OptionsFrom) {
			return pkgerrors.Wrapf(ErrUnknownProvider, "%s: %q", def.Key, def.OptionsFrom)
		}
	}

	return nil
}
