package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"readjustment-engine/internal/actuarial"
	"readjustment-engine/internal/reference"
)

type engineFile struct {
	MarketAverage *reference.Entry           `yaml:"market_average"`
	Operators     map[string]reference.Entry `yaml:"operators"`
	Policy        actuarial.Policy           `yaml:"policy"`
}

// LoadEngineFile reads the reference table and calculation policy. An empty
// path yields the built-in table and default policy. Policy keys missing from
// the file keep their defaults.
func LoadEngineFile(path string) (*reference.Table, actuarial.Policy, error) {
	if path == "" {
		return reference.DefaultTable(), actuarial.DefaultPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, actuarial.Policy{}, fmt.Errorf("read engine file: %w", err)
	}
	return ParseEngineFile(data)
}

func ParseEngineFile(data []byte) (*reference.Table, actuarial.Policy, error) {
	ef := engineFile{Policy: actuarial.DefaultPolicy()}
	if err := yaml.UnmarshalStrict(data, &ef); err != nil {
		return nil, actuarial.Policy{}, fmt.Errorf("parse engine file: %w", err)
	}
	if err := ef.Policy.Validate(); err != nil {
		return nil, actuarial.Policy{}, err
	}

	var table *reference.Table
	if len(ef.Operators) == 0 && ef.MarketAverage == nil {
		table = reference.DefaultTable()
	} else {
		if ef.MarketAverage == nil {
			return nil, actuarial.Policy{}, fmt.Errorf("engine file: market_average is required when operators are listed")
		}
		entries := make(map[string]reference.Entry, len(ef.Operators)+1)
		for name, e := range ef.Operators {
			entries[name] = e
		}
		entries[reference.MarketAverage] = *ef.MarketAverage
		t, err := reference.NewTable(entries)
		if err != nil {
			return nil, actuarial.Policy{}, fmt.Errorf("engine file: %w", err)
		}
		table = t
	}

	return table, ef.Policy, nil
}
