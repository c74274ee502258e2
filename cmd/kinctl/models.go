package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"multibody-kinematics/pkg/models"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the built-in models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tNQ\tNV\tLENGTHS\tDESCRIPTION")
			for _, kind := range models.SupportedTypes() {
				tree, err := models.NewFromConfig(models.Config{Type: kind})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%s\n", kind,
					tree.NumPositions(), tree.NumVelocities(), models.DefaultLengths(kind), models.Description(kind))
			}
			return w.Flush()
		},
	}
}
