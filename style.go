package backdrop

import (
	"math"
	"sort"
	"strconv"
)

// StyleVars is a set of custom properties ("--glass-darkness", "--h", ...)
// written by the backdrop for presentation layers it does not own. The zero
// value is ready to use.
type StyleVars struct {
	vars map[string]string
}

// Set stores value under name.
func (s *StyleVars) Set(name, value string) {
	if s.vars == nil {
		s.vars = make(map[string]string)
	}
	s.vars[name] = value
}

// SetFloat stores v formatted with at most prec decimals and no trailing zeros.
func (s *StyleVars) SetFloat(name string, v float64, prec int) {
	p := math.Pow(10, float64(prec))
	s.Set(name, strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64))
}

// SetInt stores v in decimal.
func (s *StyleVars) SetInt(name string, v int) {
	s.Set(name, strconv.Itoa(v))
}

// Get returns the value stored under name.
func (s *StyleVars) Get(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Float parses the value stored under name. Missing or malformed values
// report ok=false.
func (s *StyleVars) Float(name string) (float64, bool) {
	v, ok := s.vars[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Names returns the stored property names in sorted order.
func (s *StyleVars) Names() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
