package config

// Presets are per-disease parameter sets. Rates are per day; growth-rate
// and R0 values match the usual textbook ranges, not any fitted dataset.
var Presets = map[string]map[string]*Config{
	"sir": {
		"influenza": {
			Model: "sir", Integrator: "rk45", TStart: 0, TEnd: 150, Interval: 1,
			Params:    ParamsConfig{Beta: 0.5, Gamma: 1.0 / 3.0},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
		"measles": {
			Model: "sir", Integrator: "rk45", TStart: 0, TEnd: 60, Interval: 0.25,
			Params:    ParamsConfig{Beta: 1.75, Gamma: 1.0 / 8.0},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
		"slow_burn": {
			Model: "sir", Integrator: "rk45", TStart: 0, TEnd: 400, Interval: 1,
			Params:    ParamsConfig{Beta: 0.4, Gamma: 1.0 / 3.0},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
	},
	"seir": {
		"covid_like": {
			Model: "seir", Integrator: "rk45", TStart: 0, TEnd: 250, Interval: 1,
			Params:    ParamsConfig{Beta: 0.35, Sigma: 1.0 / 5.0, Gamma: 1.0 / 7.0},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
		"long_latency": {
			Model: "seir", Integrator: "rk45", TStart: 0, TEnd: 400, Interval: 1,
			Params:    ParamsConfig{Beta: 0.5, Sigma: 1.0 / 14.0, Gamma: 1.0 / 3.0},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
	},
	"sis": {
		"endemic": {
			Model: "sis", Integrator: "rk45", TStart: 0, TEnd: 200, Interval: 1,
			Params:    ParamsConfig{Beta: 0.5, Gamma: 1.0 / 3.0},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
	},
	"sird": {
		"severe": {
			Model: "sird", Integrator: "rk45", TStart: 0, TEnd: 200, Interval: 1,
			Params:    ParamsConfig{Beta: 0.5, Gamma: 0.3, Mu: 0.03},
			InitState: InitStateConfig{S: 1.0, I: DefaultI0},
		},
	},
}

func GetPreset(model, name string) *Config {
	byName, ok := Presets[model]
	if !ok {
		return nil
	}
	return byName[name]
}

func ListPresets(model string) []string {
	byName, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
