package latticegas

import (
	"strconv"

	"lattice-entropy/internal/core"
)

// Parameters describes the automaton's settings and live counters.
func (a *Automaton) Parameters() core.ParameterSnapshot {
	n := a.grid.N()
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("n", "Size", n),
				int64Param("seed", "Seed", a.cfg.Seed),
			},
		},
		{
			Name: "Entropy",
			Params: []core.Parameter{
				stringParam("codec", "Codec", a.cfg.Codec),
				stringParam("encoding", "Cell encoding", string(a.cfg.Encoding)),
			},
		},
		{
			Name:    "State",
			Summary: "Occupied sites are conserved by every step.",
			Params: []core.Parameter{
				intParam("steps", "Steps", a.steps),
				intParam("ones", "Occupied sites", a.grid.Ones()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
