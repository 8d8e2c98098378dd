package capability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

// Facts records which optional engines initialized at process start. It is
// immutable once built.
type Facts struct {
	loaded map[domain.Dependency]bool
}

func NewFacts(loaded map[domain.Dependency]bool) Facts {
	out := make(map[domain.Dependency]bool, len(loaded))
	for dep, ok := range loaded {
		out[dep] = ok
	}
	return Facts{loaded: out}
}

// AllLoaded marks every known dependency as loaded.
func AllLoaded() Facts {
	loaded := make(map[domain.Dependency]bool)
	for _, dep := range domain.Dependencies() {
		loaded[dep] = true
	}
	return Facts{loaded: loaded}
}

func (f Facts) Has(dep domain.Dependency) bool {
	return f.loaded[dep]
}

// Without returns a copy with deps marked missing.
func (f Facts) Without(deps ...domain.Dependency) Facts {
	out := NewFacts(f.loaded)
	for _, dep := range deps {
		out.loaded[dep] = false
	}
	return out
}

// EngineCheck tries to initialize one optional engine.
type EngineCheck struct {
	Dependency domain.Dependency
	Requires   []domain.Dependency
	Check      func(ctx context.Context) error
}

// Detect runs checks once, in order. A check whose requirements did not load
// is not attempted; disabled dependencies are never initialized.
func Detect(ctx context.Context, logger *slog.Logger, disabled []string, checks ...EngineCheck) Facts {
	if logger == nil {
		logger = slog.Default()
	}
	off := make(map[domain.Dependency]bool, len(disabled))
	for _, name := range disabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			off[domain.Dependency(name)] = true
		}
	}

	loaded := make(map[domain.Dependency]bool, len(checks))
	for _, p := range checks {
		if off[p.Dependency] {
			logger.Warn("dependency_disabled", "dependency", p.Dependency)
			continue
		}
		if missing := firstMissing(loaded, p.Requires); missing != "" {
			logger.Warn("dependency_not_attempted", "dependency", p.Dependency, "requires", missing)
			continue
		}
		if err := runCheck(ctx, p); err != nil {
			logger.Warn("dependency_missing",
				"dependency", p.Dependency,
				"error_kind", domain.ErrorKindName(err),
				"error", err,
			)
			continue
		}
		loaded[p.Dependency] = true
		logger.Info("dependency_loaded", "dependency", p.Dependency)
	}
	return Facts{loaded: loaded}
}

func firstMissing(loaded map[domain.Dependency]bool, requires []domain.Dependency) domain.Dependency {
	for _, dep := range requires {
		if !loaded[dep] {
			return dep
		}
	}
	return ""
}

func runCheck(ctx context.Context, p EngineCheck) (err error) {
	if p.Check == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine %s panicked: %v", p.Dependency, r)
		}
	}()
	return p.Check(ctx)
}
