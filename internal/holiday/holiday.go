// Package holiday resolves national holiday names by date.
// The event store materializes lookup results once per displayed year, so
// implementations are treated as pure functions of the year.
package holiday

// Source resolves official holiday names for a calendar year.
// Keys are YYYY-MM-DD dates, values are display names.
type Source interface {
	Lookup(year int) map[string]string
}

// Func adapts a plain function to a Source.
type Func func(year int) map[string]string

// Lookup calls f.
func (f Func) Lookup(year int) map[string]string { return f(year) }
