package config

var Presets = map[string]map[string]*Config{
	"decay": {
		"fast": {
			Model: "decay", Method: "deer", Steps: 100, T0: 0, T1: 2,
			Params: map[string]float64{"k": 4},
		},
		"slow": {
			Model: "decay", Method: "deer", Steps: 200, T0: 0, T1: 10,
			Params: map[string]float64{"k": 0.5},
		},
	},
	"logistic": {
		"sigmoid": {
			Model: "logistic", Method: "deer", Steps: 200, T0: 0, T1: 6,
			Y0: []float64{0.05},
		},
	},
	"vanderpol": {
		"gentle": {
			Model: "vanderpol", Method: "deer", Steps: 400, T0: 0, T1: 20,
			Params: map[string]float64{"mu": 1},
		},
		"stiff": {
			Model: "vanderpol", Method: "newton", Steps: 2000, T0: 0, T1: 30,
			Params: map[string]float64{"mu": 15},
		},
	},
	"pendulum": {
		"swing": {
			Model: "pendulum", Method: "deer", Steps: 400, T0: 0, T1: 10,
			Y0: []float64{2.5, 0},
		},
		"small": {
			Model: "pendulum", Method: "deer", Steps: 200, T0: 0, T1: 10,
			Y0: []float64{0.2, 0},
		},
	},
	"lorenz": {
		"butterfly": {
			Model: "lorenz", Method: "newton", Steps: 4000, T0: 0, T1: 25,
		},
		"window": {
			Model: "lorenz", Method: "deer", Steps: 400, T0: 0, T1: 2,
		},
	},
	"robertson": {
		"onset": {
			Model: "robertson", Method: "deer", Steps: 400, T0: 0, T1: 1,
		},
		"long": {
			Model: "robertson", Method: "newton", Steps: 1000, T0: 0, T1: 100,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
