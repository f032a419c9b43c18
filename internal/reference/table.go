package reference

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"readjustment-engine/internal/model"
)

// MarketAverage is the required fallback entry of every table.
const MarketAverage = "market average"

type Entry struct {
	PoolRate float64 `yaml:"pool_rate" json:"pool_rate"`
	VCMHRate float64 `yaml:"vcmh_rate" json:"vcmh_rate"`
}

func (e Entry) validate(name string) error {
	if math.IsNaN(e.PoolRate) || math.IsInf(e.PoolRate, 0) || e.PoolRate < 0 {
		return fmt.Errorf("operator %q: pool_rate must be a finite number >= 0", name)
	}
	if math.IsNaN(e.VCMHRate) || math.IsInf(e.VCMHRate, 0) || e.VCMHRate < 0 {
		return fmt.Errorf("operator %q: vcmh_rate must be a finite number >= 0", name)
	}
	return nil
}

// Table is the static operator reference table. It is read-only after
// construction and safe for concurrent use.
type Table struct {
	entries map[string]Entry
	names   map[string]string
	latency time.Duration
}

func NewTable(entries map[string]Entry) (*Table, error) {
	t := &Table{
		entries: make(map[string]Entry, len(entries)),
		names:   make(map[string]string, len(entries)),
	}
	for name, e := range entries {
		key := normalize(name)
		if key == "" {
			return nil, fmt.Errorf("operator name must not be blank")
		}
		if err := e.validate(name); err != nil {
			return nil, err
		}
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("operator %q listed twice", name)
		}
		t.entries[key] = e
		t.names[key] = strings.TrimSpace(name)
	}
	if _, ok := t.entries[MarketAverage]; !ok {
		return nil, fmt.Errorf("reference table requires a %q entry", MarketAverage)
	}
	return t, nil
}

// DefaultTable returns the built-in index table.
func DefaultTable() *Table {
	t, err := NewTable(map[string]Entry{
		MarketAverage:             {PoolRate: 15.5, VCMHRate: 15.5},
		"Bradesco Saúde":          {PoolRate: 16.2, VCMHRate: 15.98},
		"SulAmérica":              {PoolRate: 15.8, VCMHRate: 16.4},
		"Amil":                    {PoolRate: 17.1, VCMHRate: 17.25},
		"Unimed":                  {PoolRate: 14.9, VCMHRate: 14.3},
		"NotreDame Intermédica":   {PoolRate: 15.2, VCMHRate: 13.9},
		"Porto Seguro":            {PoolRate: 15.6, VCMHRate: 15.1},
		"Sompo Saúde":             {PoolRate: 14.7, VCMHRate: 14.85},
		"Allianz":                 {PoolRate: 16.0, VCMHRate: 16.7},
		"Omint":                   {PoolRate: 17.4, VCMHRate: 18.2},
		"Prevent Senior":          {PoolRate: 18.3, VCMHRate: 19.1},
		"Hapvida":                 {PoolRate: 13.8, VCMHRate: 12.6},
		"Care Plus":               {PoolRate: 16.5, VCMHRate: 17.0},
		"Golden Cross":            {PoolRate: 15.0, VCMHRate: 14.6},
		"Seguros Unimed":          {PoolRate: 15.3, VCMHRate: 15.4},
		"Central Nacional Unimed": {PoolRate: 15.1, VCMHRate: 14.95},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// WithLatency returns a copy of the table whose Lookup waits d before
// answering, simulating a remote index service.
func (t *Table) WithLatency(d time.Duration) *Table {
	cp := *t
	cp.latency = d
	return &cp
}

// Get looks up an operator ignoring case and surrounding spaces.
func (t *Table) Get(operator string) (Entry, bool) {
	e, ok := t.entries[normalize(operator)]
	return e, ok
}

// DisplayName returns the table's spelling of operator, if present.
func (t *Table) DisplayName(operator string) (string, bool) {
	n, ok := t.names[normalize(operator)]
	return n, ok
}

func (t *Table) MarketAverage() Entry {
	return t.entries[MarketAverage]
}

// Lookup implements Source.
func (t *Table) Lookup(ctx context.Context, operator string) (Entry, bool, error) {
	if t.latency > 0 {
		timer := time.NewTimer(t.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Entry{}, false, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}
	e, ok := t.Get(operator)
	return e, ok, nil
}

// Operators lists the table sorted by name, market average last.
func (t *Table) Operators() []model.OperatorEntry {
	out := make([]model.OperatorEntry, 0, len(t.entries))
	for key, e := range t.entries {
		if key == MarketAverage {
			continue
		}
		out = append(out, model.OperatorEntry{Name: t.names[key], PoolRate: e.PoolRate, VCMHRate: e.VCMHRate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	avg := t.MarketAverage()
	return append(out, model.OperatorEntry{Name: MarketAverage, PoolRate: avg.PoolRate, VCMHRate: avg.VCMHRate})
}

func (t *Table) Len() int {
	return len(t.entries)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
