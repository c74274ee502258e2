package main

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/kinematics"
	"multibody-kinematics/pkg/symbolic"
)

func newSymbolicCmd(a *app) *cobra.Command {
	var (
		state   stateFlags
		bodyArg string
		wrt     []string
		twist   bool
	)
	cmd := &cobra.Command{
		Use:   "symbolic",
		Short: "Print a body's world position as an expression of q",
		Long: `Runs forward kinematics with symbolic scalars q0..qN and v0..vM and prints
the world position of --body. --wrt prints partial derivatives with respect
to the named variables; --twist adds the world-frame twist. When a state is
given (--q, --v or a run file) each expression is also evaluated there.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resolve(cmd, &state)
			if err != nil {
				return err
			}
			b, err := res.tree.FindBody(bodyArg)
			if err != nil {
				return err
			}

			if len(res.q) != res.tree.NumPositions() {
				return kerrors.DimensionMismatchError("q", len(res.q), res.tree.NumPositions())
			}
			if len(res.v) != res.tree.NumVelocities() {
				return kerrors.DimensionMismatchError("v", len(res.v), res.tree.NumVelocities())
			}

			qn := names("q", res.tree.NumPositions())
			vn := names("v", res.tree.NumVelocities())
			env := make(map[string]float64, len(qn)+len(vn))
			for i, n := range qn {
				env[n] = res.q[i]
			}
			for i, n := range vn {
				env[n] = res.v[i]
			}

			r := kinematics.NewResults[symbolic.Expr](res.tree, kinematics.WithLogger(a.logger.WithPrefix("kinematics")))
			if err := r.Update(symbolic.Variables(qn...), symbolic.Variables(vn...)); err != nil {
				return err
			}
			x, err := r.PoseInWorld(b)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			show := func(label string, e symbolic.Expr) error {
				val, err := e.Evaluate(env)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s = %s\n%-10s   (= %.6g)\n", label, e, "", val)
				return nil
			}

			fmt.Fprintf(out, "body %s of %s\n", b.Name(), res.run.Model)
			for i, axis := range []string{"x", "y", "z"} {
				if err := show("p_"+axis, x.P[i]); err != nil {
					return err
				}
				for _, name := range wrt {
					if err := show(fmt.Sprintf("∂p_%s/∂%s", axis, name), x.P[i].Diff(name)); err != nil {
						return err
					}
				}
			}

			if twist {
				tw, err := r.TwistInWorldFrame(b)
				if err != nil {
					return err
				}
				labels := []string{"ω_x", "ω_y", "ω_z", "v_x", "v_y", "v_z"}
				for i, e := range tw.Vector() {
					if err := show(labels[i], e); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	state.register(cmd)
	cmd.Flags().StringVarP(&bodyArg, "body", "b", "", "body name")
	cmd.Flags().StringSliceVar(&wrt, "wrt", nil, "variables to differentiate by, e.g. q0,q1")
	cmd.Flags().BoolVar(&twist, "twist", false, "also print the world-frame twist")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}
