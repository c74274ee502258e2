// kinctl evaluates forward kinematics of the built-in multibody models.
//
// Usage:
//
//	kinctl <command> [options]
//
// Commands:
//
//	models     List the built-in models
//	fk         Print pose and twist of every body for a state
//	check      Compare dual-number derivatives with finite differences
//	symbolic   Print a body's world position as an expression of q
//
// Examples:
//
//	# Double pendulum, elbow bent, text output
//	kinctl fk --model double_pendulum --q 0.3,-0.2 --v 0,1
//
//	# State and output format taken from a run file, q overridden
//	kinctl fk --config run.cfg --q 0.1,0.2 --format yaml
//
//	# Verify derivatives of the SCARA quill
//	kinctl check --model scara --q 0.4,0.3,0.05
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kerrors "multibody-kinematics/pkg/errors"
)

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and reports a panic inside a command as a runtime error.
func execute(cmd *cobra.Command) (err error) {
	defer func() {
		if perr := kerrors.RecoverPanic(recover()); perr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", perr)
			err = perr
		}
	}()
	return cmd.Execute()
}
