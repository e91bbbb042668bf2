package version

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	buildversion "github.com/openshift/dedicated-admin-operator/pkg/version"
)

// AddCommand adds the version command to the given parent command.
func AddCommand(parent *cobra.Command) {
	parent.AddCommand(NewCmd())
}

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of gen-csv",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := buildversion.Get()
			logrus.WithFields(logrus.Fields{
				"version":   info.Version,
				"commit":    info.Commit,
				"goVersion": info.GoVersion,
			}).Debug("gen-csv version")
			fmt.Fprint(cmd.OutOrStdout(), buildversion.String())
		},
	}
}
