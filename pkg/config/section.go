package config

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Section is one [name] block. Option names are case-insensitive.
type Section struct {
	name    string
	options map[string]string

	mu       sync.RWMutex
	accessed map[string]struct{}
}

func newSection(name string, options map[string]string) *Section {
	opts := make(map[string]string, len(options))
	for k, v := range options {
		opts[strings.ToLower(k)] = v
	}
	return &Section{
		name:     name,
		options:  opts,
		accessed: make(map[string]struct{}),
	}
}

func (s *Section) GetName() string { return s.name }

func (s *Section) HasOption(option string) bool {
	_, ok := s.options[strings.ToLower(option)]
	return ok
}

// GetUnusedOptions lists options never read, sorted.
func (s *Section) GetUnusedOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []string
	for opt := range s.options {
		if _, ok := s.accessed[opt]; !ok {
			result = append(result, opt)
		}
	}
	sort.Strings(result)
	return result
}

// lookup returns the raw value and marks the option used. found is false
// when the option is absent; the option still counts as used so a
// fallback value does not show up as unused.
func (s *Section) lookup(option string) (value string, found bool) {
	key := strings.ToLower(option)
	s.mu.Lock()
	s.accessed[key] = struct{}{}
	s.mu.Unlock()
	value, found = s.options[key]
	return value, found
}

// Get returns a string option, the fallback when absent, or an error.
func (s *Section) Get(option string, fallback ...string) (string, error) {
	if v, ok := s.lookup(option); ok {
		return v, nil
	}
	if len(fallback) > 0 {
		return fallback[0], nil
	}
	return "", ErrMissingOption(s.name, option)
}

// GetFloat returns a float64 option.
func (s *Section) GetFloat(option string, fallback ...float64) (float64, error) {
	v, ok := s.lookup(option)
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return 0, ErrMissingOption(s.name, option)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, ErrInvalidValue(s.name, option, v, "float", err)
	}
	return f, nil
}

// FloatBounds constrains GetFloatWithBounds. Nil fields are unchecked.
type FloatBounds struct {
	MinVal *float64 // >=
	MaxVal *float64 // <=
	Above  *float64 // >
	Below  *float64 // <
}

func (s *Section) GetFloatWithBounds(option string, bounds FloatBounds, fallback ...float64) (float64, error) {
	v, err := s.GetFloat(option, fallback...)
	if err != nil {
		return 0, err
	}
	if err := s.checkBounds(option, v, bounds); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *Section) checkBounds(option string, v float64, b FloatBounds) error {
	format := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	switch {
	case b.MinVal != nil && v < *b.MinVal:
		return ErrOutOfRange(s.name, option, v, "must have minimum of "+format(*b.MinVal))
	case b.MaxVal != nil && v > *b.MaxVal:
		return ErrOutOfRange(s.name, option, v, "must have maximum of "+format(*b.MaxVal))
	case b.Above != nil && v <= *b.Above:
		return ErrOutOfRange(s.name, option, v, "must be above "+format(*b.Above))
	case b.Below != nil && v >= *b.Below:
		return ErrOutOfRange(s.name, option, v, "must be below "+format(*b.Below))
	}
	return nil
}

// GetBool accepts 1/true/yes/on and 0/false/no/off.
func (s *Section) GetBool(option string, fallback ...bool) (bool, error) {
	v, ok := s.lookup(option)
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return false, ErrMissingOption(s.name, option)
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, ErrInvalidValue(s.name, option, v, "boolean", nil)
}

// GetChoice returns the canonical spelling of one of choices.
func (s *Section) GetChoice(option string, choices []string, fallback ...string) (string, error) {
	v, err := s.Get(option, fallback...)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if strings.EqualFold(strings.TrimSpace(v), c) {
			return c, nil
		}
	}
	return "", ErrInvalidChoice(s.name, option, v, choices)
}

// GetFloatList splits on sep and parses each non-empty element. Every
// element must satisfy bounds.
func (s *Section) GetFloatList(option, sep string, bounds FloatBounds, fallback ...[]float64) ([]float64, error) {
	v, ok := s.lookup(option)
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return nil, ErrMissingOption(s.name, option)
	}
	result := []float64{}
	for _, p := range strings.Split(v, sep) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, ErrInvalidValue(s.name, option, p, "float", err)
		}
		if err := s.checkBounds(option, f, bounds); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}
