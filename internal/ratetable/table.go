package ratetable

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_table.yaml
var defaultTable []byte

// ErrUnknownKey is wrapped by LookupRate when a key has no spread.
var ErrUnknownKey = errors.New("unknown rate table key")

// Adjustments are flat dollar amounts subtracted from the risk-adjusted NPV:
// Min produces the band floor and Max the ceiling, so Min >= Max.
type Adjustments struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Table is immutable after Parse returns; concurrent reads need no locking.
type Table struct {
	baseRate    float64
	spreads     map[string]float64
	adjustments Adjustments
}

type document struct {
	BaseDiscountRate float64            `yaml:"base_discount_rate"`
	Adjustments      Adjustments        `yaml:"amount_adjustments"`
	Spreads          map[string]float64 `yaml:"spreads"`
}

var (
	defaultOnce sync.Once
	defaultTbl  *Table
)

// Default returns the table embedded in the binary. It panics if the embedded
// document is broken, which is a build defect.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("ratetable: embedded table: %v", err))
		}
		defaultTbl = t
	})
	return defaultTbl
}

// Load reads a YAML table from path, or returns the embedded default when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rate table %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and checks a YAML table. Every key reachable from Factors must be priced.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if !(doc.BaseDiscountRate > 0) || math.IsInf(doc.BaseDiscountRate, 0) {
		return nil, fmt.Errorf("base_discount_rate must be positive, got %v", doc.BaseDiscountRate)
	}
	if doc.Adjustments.Max < 0 || doc.Adjustments.Min < doc.Adjustments.Max {
		return nil, fmt.Errorf("amount_adjustments must satisfy min >= max >= 0, got min=%v max=%v",
			doc.Adjustments.Min, doc.Adjustments.Max)
	}

	spreads := make(map[string]float64, len(doc.Spreads))
	for k, v := range doc.Spreads {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("spread %s is not finite", k)
		}
		spreads[k] = v
	}

	var missing []string
	for _, f := range Factors {
		for _, v := range f.Values {
			if _, ok := spreads[f.Key(v)]; !ok {
				missing = append(missing, f.Key(v))
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("spreads missing for keys %v", missing)
	}

	return &Table{
		baseRate:    doc.BaseDiscountRate,
		spreads:     spreads,
		adjustments: doc.Adjustments,
	}, nil
}

// BaseRate is the annual discount rate in percent applied to every stream.
func (t *Table) BaseRate() float64 { return t.baseRate }

func (t *Table) Adjustments() Adjustments { return t.adjustments }

// Spread returns the spread for key and whether the key is priced.
func (t *Table) Spread(key string) (float64, bool) {
	v, ok := t.spreads[key]
	return v, ok
}

// Keys returns all priced keys, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.spreads))
	for k := range t.spreads {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Spreads returns a copy of the spread map.
func (t *Table) Spreads() map[string]float64 {
	out := make(map[string]float64, len(t.spreads))
	for k, v := range t.spreads {
		out[k] = v
	}
	return out
}

// LookupRate returns the personalized rate: base rate plus the spread of every key.
// Any unpriced key fails the whole lookup.
func (t *Table) LookupRate(keys []string) (float64, error) {
	rate := t.baseRate
	for _, k := range keys {
		s, ok := t.spreads[k]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
		rate += s
	}
	return rate, nil
}

// MustLookupRate is LookupRate for keys that already passed validation.
// A failure here means the table and the validator disagree.
func (t *Table) MustLookupRate(keys []string) float64 {
	rate, err := t.LookupRate(keys)
	if err != nil {
		panic(fmt.Sprintf("ratetable: %v", err))
	}
	return rate
}
