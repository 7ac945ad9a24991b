package charts

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
)

// Library holds every dashboard the site can render. Loading replaces the
// whole set at once; a loaded spec is never modified in place.
type Library struct {
	logger *zap.Logger
	set    atomic.Pointer[dashboardSet]
}

type dashboardSet struct {
	dashboards map[string]*Dashboard
	generation uint64
}

// NewLibrary returns an empty library.
func NewLibrary(logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Library{logger: logger}
	l.set.Store(&dashboardSet{dashboards: map[string]*Dashboard{}})
	return l
}

// Load reads dashboards laid out as <dashboard>/<variant>.json and swaps them
// in. On error the previously loaded set stays in place.
func (l *Library) Load(fsys fs.FS) error {
	dirs, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read chart root: %w", err)
	}

	dashboards := make(map[string]*Dashboard)
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		d, err := loadDashboard(fsys, dir.Name(), l.logger)
		if err != nil {
			return err
		}
		dashboards[d.Name] = d
	}

	for {
		old := l.set.Load()
		next := &dashboardSet{dashboards: dashboards, generation: old.generation + 1}
		if l.set.CompareAndSwap(old, next) {
			l.logger.Info("Chart library loaded",
				zap.Strings("dashboards", sortedNames(dashboards)),
				zap.Uint64("generation", next.generation))
			return nil
		}
	}
}

func loadDashboard(fsys fs.FS, name string, logger *zap.Logger) (*Dashboard, error) {
	files, err := fs.ReadDir(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read dashboard %s: %w", name, err)
	}

	specs := make(map[breakpoint.Variant]Spec)
	for _, f := range files {
		if f.IsDir() || path.Ext(f.Name()) != ".json" {
			continue
		}
		variant, err := breakpoint.ParseVariant(strings.TrimSuffix(f.Name(), ".json"))
		if err != nil {
			logger.Warn("Skipping chart spec with unknown variant",
				zap.String("dashboard", name), zap.String("file", f.Name()))
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(name, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", name, f.Name(), err)
		}
		spec, err := ParseSpec(data)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", name, f.Name(), err)
		}
		specs[variant] = spec
	}

	return NewDashboard(name, specs)
}

// Dashboard returns the named dashboard and the generation of the set it
// came from.
func (l *Library) Dashboard(name string) (*Dashboard, uint64, error) {
	set := l.set.Load()
	d, ok := set.dashboards[name]
	if !ok {
		return nil, set.generation, fmt.Errorf("%w: %s", ErrUnknownDashboard, name)
	}
	return d, set.generation, nil
}

// Names lists the loaded dashboards alphabetically.
func (l *Library) Names() []string {
	return sortedNames(l.set.Load().dashboards)
}

// Generation increases by one on every successful Load.
func (l *Library) Generation() uint64 {
	return l.set.Load().generation
}
