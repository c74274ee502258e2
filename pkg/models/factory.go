// Package models builds the demonstration trees selectable by name from the
// command line and from run configuration files.
package models

import (
	"fmt"
	"strings"

	"multibody-kinematics/pkg/config"
	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/multibody"
)

// Config selects a model and its link lengths. An empty Lengths uses the
// model's defaults.
type Config struct {
	Type    string
	Lengths []float64
}

// NewFromConfig builds the tree described by cfg.
func NewFromConfig(cfg Config) (*multibody.Tree, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Type))

	m, ok := catalog[kind]
	if !ok {
		return nil, kerrors.ModelError(fmt.Sprintf("unsupported model type: %s", cfg.Type))
	}

	lengths := cfg.Lengths
	if len(lengths) == 0 {
		lengths = m.lengths
	}
	if len(lengths) != len(m.lengths) {
		return nil, kerrors.ModelError(fmt.Sprintf("%s takes %d lengths, got %d", kind, len(m.lengths), len(lengths))).
			SetContext("model", kind)
	}
	for i, l := range lengths {
		if !(l > 0) {
			return nil, kerrors.ModelError(fmt.Sprintf("%s length %d must be positive, got %g", kind, i, l)).
				SetContext("model", kind)
		}
	}

	t, err := m.build(lengths).Build()
	if err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrModel, "building "+kind)
	}
	return t, nil
}

// LoadFromRunConfig builds the tree named in a run configuration's
// [model] section.
func LoadFromRunConfig(rc *config.RunConfig) (*multibody.Tree, error) {
	if rc == nil || rc.Model == "" {
		return nil, kerrors.ModelError("no model type configured")
	}
	return NewFromConfig(Config{Type: rc.Model, Lengths: rc.Lengths})
}

// IsSupported returns true if the given model type is known.
func IsSupported(kind string) bool {
	_, ok := catalog[strings.ToLower(strings.TrimSpace(kind))]
	return ok
}

// SupportedTypes returns the known model types in a fixed order.
func SupportedTypes() []string {
	return []string{"pendulum", "double_pendulum", "scara", "floating_base", "rpy_floating_base"}
}

// Description returns a one-line summary of a model, or "" if unknown.
func Description(kind string) string {
	return catalog[strings.ToLower(strings.TrimSpace(kind))].summary
}

// DefaultLengths returns a copy of a model's default link lengths.
func DefaultLengths(kind string) []float64 {
	return append([]float64(nil), catalog[strings.ToLower(strings.TrimSpace(kind))].lengths...)
}

// NeutralPositions returns a q for t with every coordinate zero except
// quaternion scalar parts, which are one.
func NeutralPositions(t *multibody.Tree) []float64 {
	q := make([]float64, t.NumPositions())
	for _, b := range t.Bodies() {
		if b.Joint().Type == multibody.QuaternionFloating {
			q[b.PositionStart()+3] = 1
		}
	}
	return q
}
