// Package checker wraps each supported external analysis tool behind a
// uniform adapter contract. Adapters translate the profile's option bag
// into the tool's native invocation, run it and parse its diagnostics.
package checker

import (
	"context"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// Adapter is the uniform contract over one external checker. Adapters
// never know about other checkers; failures are returned, not fatal.
type Adapter interface {
	// Name identifies the checker in the registry and in reports
	Name() domain.CheckerName

	// Run invokes the tool against the target and parses its native
	// output into raw findings. The context carries the run deadline;
	// the underlying process is killed when it fires.
	Run(ctx context.Context, target domain.Target, opts config.Options) ([]domain.RawFinding, error)
}

// registry is the static adapter table keyed by checker name
var registry = map[domain.CheckerName]Adapter{
	domain.CheckerBandit:  &BanditAdapter{},
	domain.CheckerDodgy:   &DodgyAdapter{},
	domain.CheckerFlakes:  &FlakesAdapter{},
	domain.CheckerMccabe:  &MccabeAdapter{},
	domain.CheckerMypy:    &MypyAdapter{},
	domain.CheckerPep8:    &Pep8Adapter{},
	domain.CheckerPep257:  &Pep257Adapter{},
	domain.CheckerPylint:  &PylintAdapter{},
	domain.CheckerPyroma:  &PyromaAdapter{},
	domain.CheckerVulture: &VultureAdapter{},
}

// Lookup returns the adapter for name
func Lookup(name domain.CheckerName) (Adapter, bool) {
	a, ok := registry[name]
	return a, ok
}

// All returns the full adapter table. The map is shared; callers must not
// mutate it.
func All() map[domain.CheckerName]Adapter {
	return registry
}
