package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/landscape/internal/sim"
)

// Scenario prepares a fresh session: it shapes terrain, places ruins,
// configures the overlay and schedules the timers that drive the run.
type Scenario struct {
	Name        string
	Description string
	Setup       sim.SetupFunc
}

type Registry struct {
	scenarios map[string]Scenario
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]Scenario)}

	r.Register(Scenario{"basin", "a single basin absorbing periodic shocks", setupBasin})
	r.Register(Scenario{"noise", "stochastic kicks until the marker escapes", setupNoise})
	r.Register(Scenario{"erosion", "the basin floor rises until collapse", setupErosion})
	r.Register(Scenario{"hysteresis", "two basins; restoring the first does not bring the marker back", setupHysteresis})
	r.Register(Scenario{"fog", "discrete descent through hidden terrain", setupFog})

	return r
}

func (r *Registry) Register(s Scenario) {
	r.scenarios[s.Name] = s
}

func (r *Registry) Get(name string) (Scenario, error) {
	s, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", sim.ErrUnknownScenario, name)
	}
	return s, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the setup named by the session's config.
func (r *Registry) Apply(s *sim.Session) error {
	sc, err := r.Get(s.Config().Scenario)
	if err != nil {
		return err
	}
	return sc.Setup(s)
}

// Setup returns a SetupFunc bound to this registry, suitable for ensembles.
func (r *Registry) Setup() sim.SetupFunc {
	return r.Apply
}
