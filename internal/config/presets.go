package config

var Presets = map[string]map[string]*Config{
	"hf": {
		"ambient": {
			Molecule: "hf", Method: "bbk", Dt: 0.1, Duration: 5000,
			Temperature: 300, Friction: 0.05,
		},
		"hot": {
			Molecule: "hf", Method: "bbk", Dt: 0.1, Duration: 5000,
			Temperature: 1500, Friction: 0.05,
		},
		"cold": {
			Molecule: "hf", Method: "bbk", Dt: 0.1, Duration: 10000,
			Temperature: 50, Friction: 0.02,
		},
		"nve": {
			Molecule: "hf", Method: "verlet", Dt: 0.05, Duration: 2000,
			Init: InitConfig{R: 1.05},
		},
	},
	"h2": {
		"ambient": {
			Molecule: "h2", Method: "bbk", Dt: 0.05, Duration: 5000,
			Temperature: 300, Friction: 0.05,
		},
		"nve": {
			Molecule: "h2", Method: "verlet", Dt: 0.05, Duration: 2000,
			Init: InitConfig{R: 0.85},
		},
	},
	"hcl": {
		"ambient": {
			Molecule: "hcl", Method: "bbk", Dt: 0.1, Duration: 5000,
			Temperature: 300, Friction: 0.05,
		},
	},
	"co": {
		"ambient": {
			Molecule: "co", Method: "bbk", Dt: 0.2, Duration: 10000,
			Temperature: 300, Friction: 0.02,
		},
		"hot": {
			Molecule: "co", Method: "bbk", Dt: 0.2, Duration: 10000,
			Temperature: 2000, Friction: 0.02,
		},
	},
}

func GetPreset(mol, preset string) *Config {
	molPresets, ok := Presets[mol]
	if !ok {
		return nil
	}
	cfg, ok := molPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(mol string) []string {
	molPresets, ok := Presets[mol]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(molPresets))
	for name := range molPresets {
		names = append(names, name)
	}
	return names
}
