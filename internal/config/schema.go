package config

import "strconv"

// DefaultSchema recognizes Import, Log, Mapper (including per-controller
// Type.N overrides), and CustomMappers.
func DefaultSchema(controllerCount int) SchemaMap {
	mapperNames := map[string]ValueType{"Type": String}

	for i := 1; i <= controllerCount; i++ {
		mapperNames["Type."+strconv.Itoa(i)] = String
	}

	return SchemaMap{
		"Import": {
			"dinput8": String,
			"winmm":   String,
		},
		"Log": {
			"Enabled": Boolean,
			"Level":   Integer,
		},
		"Mapper":       mapperNames,
		"CustomMappers": {
			"Blueprint": StringMultiValue,
		},
	}
}
