package main

import (
	"github.com/spf13/cobra"

	"multibody-kinematics/pkg/config"
	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/log"
	"multibody-kinematics/pkg/models"
	"multibody-kinematics/pkg/multibody"
)

// stateFlags selects a model and a state. Flags win over the run file.
type stateFlags struct {
	configPath string
	model      string
	lengths    []float64
	q          []float64
	v          []float64
}

func (f *stateFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "run file with [model], [state], [log] and [output] sections")
	fs.StringVarP(&f.model, "model", "m", "", "model type (see 'kinctl models')")
	fs.Float64SliceVar(&f.lengths, "lengths", nil, "link lengths, comma separated")
	fs.Float64SliceVar(&f.q, "q", nil, "generalized positions, comma separated")
	fs.Float64SliceVar(&f.v, "v", nil, "generalized velocities, comma separated")
}

// resolved is a model and state ready for evaluation.
type resolved struct {
	run  *config.RunConfig
	tree *multibody.Tree
	q, v []float64
}

func (a *app) resolve(cmd *cobra.Command, f *stateFlags) (*resolved, error) {
	rc := config.DefaultRunConfig()
	if f.configPath != "" {
		loaded, err := config.LoadRunConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		rc = loaded
		if rc.LogConfigured {
			a.applyRunLogging(cmd, rc.LogLevel, rc.LogFormat)
		}
	}

	fs := cmd.Flags()
	if fs.Changed("model") {
		rc.Model = f.model
		if !fs.Changed("lengths") {
			rc.Lengths = nil
		}
	}
	if fs.Changed("lengths") {
		rc.Lengths = f.lengths
	}
	if fs.Changed("q") {
		rc.Q = f.q
	}
	if fs.Changed("v") {
		rc.V = f.v
	}
	if rc.Model == "" {
		return nil, kerrors.ModelError("no model given; use --model or a run file")
	}

	tree, err := models.LoadFromRunConfig(rc)
	if err != nil {
		return nil, err
	}

	q, v := rc.Q, rc.V
	if q == nil {
		q = models.NeutralPositions(tree)
	}
	if v == nil {
		v = make([]float64, tree.NumVelocities())
	}

	a.logger.WithFields(log.Fields{
		"model":  rc.Model,
		"bodies": tree.NumBodies(),
		"nq":     tree.NumPositions(),
		"nv":     tree.NumVelocities(),
	}).Debug("model resolved")

	return &resolved{run: rc, tree: tree, q: q, v: v}, nil
}
