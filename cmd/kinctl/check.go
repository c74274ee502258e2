package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/kinematics"
	"multibody-kinematics/pkg/log"
	"multibody-kinematics/pkg/multibody"
	"multibody-kinematics/pkg/pool"
	"multibody-kinematics/pkg/scalar"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		state     stateFlags
		tolerance float64
		step      float64
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare dual-number derivatives with finite differences",
		Long: `For every generalized position q_k, seeds q_k as a dual number, runs
forward kinematics once and compares ∂p/∂q_k of every body origin with a
central finite difference. Fails when the worst error exceeds --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resolve(cmd, &state)
			if err != nil {
				return err
			}
			worst, err := checkDerivatives(cmd, res, step)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "max error %.3g (tolerance %.3g)\n", worst, tolerance)
			if worst > tolerance {
				return kerrors.RuntimeError(fmt.Sprintf("derivative check failed: max error %.3g", worst))
			}
			return nil
		},
	}
	state.register(cmd)
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "largest accepted absolute error")
	cmd.Flags().Float64Var(&step, "step", 0, "finite difference step (0 picks the gonum default)")
	return cmd
}

// bodyPositions flattens the world positions of every body.
func bodyPositions[T scalar.Scalar[T]](r *kinematics.Results[T]) ([]T, error) {
	out := make([]T, 0, 3*r.NumBodies())
	for i := 0; i < r.NumBodies(); i++ {
		p, err := r.BodyPosition(i)
		if err != nil {
			return nil, err
		}
		out = append(out, p[:]...)
	}
	return out, nil
}

func checkDerivatives(cmd *cobra.Command, res *resolved, step float64) (float64, error) {
	quiet := kinematics.WithLogger(log.Discard())
	dr := kinematics.NewResults[scalar.Dual](res.tree, quiet)
	fr := kinematics.NewResults[scalar.Float](res.tree, quiet)
	v := scalar.FromFloats[scalar.Float](res.v)

	positions := func(q []float64) []float64 {
		if err := fr.Update(scalar.FromFloats[scalar.Float](q), v); err != nil {
			return nil
		}
		p, err := bodyPositions(fr)
		if err != nil {
			return nil
		}
		return scalar.Floats(p)
	}

	n := 3 * res.tree.NumBodies()
	scratch := pool.NewVectors(len(res.q))
	settings := &fd.Settings{Formula: fd.Central, Step: step}
	worst := 0.0
	for k := range res.q {
		if err := dr.Update(scalar.Seed(res.q, k), scalar.Seed(res.v, -1)); err != nil {
			return 0, err
		}
		dp, err := bodyPositions(dr)
		if err != nil {
			return 0, err
		}
		ad := scalar.Derivatives(dp)

		numeric := make([]float64, n)
		for c := 0; c < n; c++ {
			c := c
			numeric[c] = fd.Derivative(func(s float64) float64 {
				q := scratch.Copy(res.q)
				defer scratch.Put(q)
				q[k] += s
				p := positions(q)
				if p == nil {
					return math.NaN()
				}
				return p[c]
			}, 0, settings)
		}

		if floats.HasNaN(numeric) {
			return 0, kerrors.RuntimeError(fmt.Sprintf("finite difference for q%d is not finite", k))
		}
		e := floats.Distance(ad, numeric, math.Inf(1))
		worst = math.Max(worst, e)
		fmt.Fprintf(cmd.OutOrStdout(), "q%-3d %-22s max error %.3g\n", k, coordinateOwner(res.tree, k), e)
	}
	return worst, nil
}

// coordinateOwner names the body whose joint owns position k.
func coordinateOwner(t *multibody.Tree, k int) string {
	for _, b := range t.Bodies() {
		if k >= b.PositionStart() && k < b.PositionStart()+b.NumPositions() {
			return fmt.Sprintf("%s[%d]", b.Name(), k-b.PositionStart())
		}
	}
	return "?"
}
