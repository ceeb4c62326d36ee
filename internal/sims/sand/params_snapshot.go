package sand

import (
	"strconv"

	"sand-ca/internal/core"
)

// Parameters reports the world configuration and live counters.
func (w *World) Parameters() core.ParameterSnapshot {
	stats := w.Stats()
	rulesSource := w.cfg.RulesPath
	if rulesSource == "" {
		rulesSource = "built-in"
	}
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				intParam("resolution", "Resolution", w.cfg.Resolution),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				stringParam("rules", "Rule source", rulesSource),
				intParam("rule_count", "Rules", w.registry.Len()),
				boolParam("retain_unsettled", "Retain unsettled", w.cfg.RetainUnsettled),
			},
		},
		{
			Name: "Particles",
			Params: []core.Parameter{
				intParam("spawned", "Spawned", stats.Spawned),
				intParam("existing", "Existing", stats.Existing),
				intParam("active", "Active cells", w.active.Len()),
				intParam("fired", "Rules fired", w.lastFired),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetBoolParameter toggles boolean settings from the HUD.
func (w *World) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "retain_unsettled":
		w.cfg.RetainUnsettled = value
		return true
	}
	return false
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

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
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
