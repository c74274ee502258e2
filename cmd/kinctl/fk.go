package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"multibody-kinematics/pkg/config"
	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/kinematics"
	"multibody-kinematics/pkg/metrics"
	"multibody-kinematics/pkg/scalar"
)

// bodyReport is the forward kinematics of one body.
type bodyReport struct {
	Name        string     `json:"name" yaml:"name"`
	Parent      string     `json:"parent,omitempty" yaml:"parent,omitempty"`
	Joint       string     `json:"joint" yaml:"joint"`
	Position    [3]float64 `json:"position" yaml:"position,flow"`
	Orientation [4]float64 `json:"orientation_wxyz" yaml:"orientation_wxyz,flow"`
	// angular then linear
	TwistWorld   [6]float64 `json:"twist_world" yaml:"twist_world,flow"`
	TwistAligned [6]float64 `json:"twist_aligned" yaml:"twist_aligned,flow"`
}

type fkReport struct {
	Model  string       `json:"model" yaml:"model"`
	Q      []float64    `json:"q" yaml:"q,flow"`
	V      []float64    `json:"v" yaml:"v,flow"`
	Bodies []bodyReport `json:"bodies" yaml:"bodies"`
}

func newFKCmd(a *app) *cobra.Command {
	var (
		state       stateFlags
		format      string
		withMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "fk",
		Short: "Print pose and twist of every body",
		Long: `Runs forward kinematics for one state and prints, per body, the world
position, the world orientation as a unit quaternion, the twist in the world
frame and the twist in the world-aligned body frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resolve(cmd, &state)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				res.run.Format = strings.ToLower(format)
			}
			if cmd.Flags().Changed("metrics") {
				res.run.Metrics = withMetrics
			}

			var m *metrics.KinematicsMetrics
			if res.run.Metrics {
				m = metrics.NewKinematicsMetrics()
			}
			report, err := a.forwardKinematics(res, m)
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), res.run.Format, report); err != nil {
				return err
			}
			if m != nil {
				return m.Write(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	state.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: "+strings.Join(config.OutputFormats, ", "))
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "print Prometheus metrics to stderr")
	return cmd
}

func (a *app) forwardKinematics(res *resolved, m *metrics.KinematicsMetrics) (*fkReport, error) {
	opts := []kinematics.Option{kinematics.WithLogger(a.logger.WithPrefix("kinematics"))}
	if m != nil {
		opts = append(opts, kinematics.WithMetrics(m))
	}
	r := kinematics.NewResults[scalar.Float](res.tree, opts...)
	if err := r.Update(scalar.FromFloats[scalar.Float](res.q), scalar.FromFloats[scalar.Float](res.v)); err != nil {
		return nil, err
	}

	report := &fkReport{Model: res.run.Model, Q: res.q, V: res.v}
	for _, b := range res.tree.Bodies() {
		x, err := r.PoseInWorld(b)
		if err != nil {
			return nil, err
		}
		world, err := r.TwistInWorldFrame(b)
		if err != nil {
			return nil, err
		}
		aligned, err := r.TwistInWorldAlignedBodyFrame(b)
		if err != nil {
			return nil, err
		}
		br := bodyReport{
			Name:         b.Name(),
			Joint:        b.Joint().Type.String(),
			Position:     x.P.Floats(),
			Orientation:  x.R.ToQuaternion().Floats(),
			TwistWorld:   world.Floats(),
			TwistAligned: aligned.Floats(),
		}
		if p, err := res.tree.Body(b.Parent()); err == nil {
			br.Parent = p.Name()
		}
		report.Bodies = append(report.Bodies, br)
	}
	return report, nil
}

func writeReport(w io.Writer, format string, report *fkReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, report)
	default:
		return kerrors.New(kerrors.ErrConfigValidation,
			fmt.Sprintf("unknown output format %q (valid: %v)", format, config.OutputFormats)).SetOption("format")
	}
}

func writeText(w io.Writer, report *fkReport) error {
	fmt.Fprintf(w, "model: %s\nq: %s\nv: %s\n\n", report.Model, vec(report.Q), vec(report.V))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BODY\tJOINT\tPOSITION\tORIENTATION (wxyz)\tTWIST WORLD (ω|v)\tTWIST ALIGNED (ω|v)")
	for _, b := range report.Bodies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s | %s\t%s | %s\n", b.Name, b.Joint,
			vec(b.Position[:]), vec(b.Orientation[:]),
			vec(b.TwistWorld[:3]), vec(b.TwistWorld[3:]),
			vec(b.TwistAligned[:3]), vec(b.TwistAligned[3:]))
	}
	return tw.Flush()
}

func vec(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		if x == 0 {
			x = 0 // no "-0"
		}
		parts[i] = fmt.Sprintf("%.6g", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
