package root

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/utils/clock"

	"github.com/openshift/dedicated-admin-operator/cmd/gen-csv/version"
	"github.com/openshift/dedicated-admin-operator/pkg/lib/csvgen"
	"github.com/openshift/dedicated-admin-operator/pkg/lib/validation"
)

// EnvPrefix prefixes the environment variables that override flags, e.g. GEN_CSV_OPERATOR_NAME.
const EnvPrefix = "GEN_CSV"

const (
	operatorNameFlag = "operator-name"
	versionBaseFlag  = "version-base"
	templateFlag     = "template"
	manifestsDirFlag = "manifests-dir"
	validateFlag     = "validate"
	debugFlag        = "debug"
)

var genCSVLong = `Generate a ClusterServiceVersion for the operator.

The operator's ClusterRole and Deployment are read from the manifests directory
and spliced into the CSV template. The CSV version is <version-base>.<commit count>-<short hash>
of the git repository in the current directory, and the result is written to
OUTPUT_DIR/<operator-name>/<version>/<operator-name>.v<version>.clusterserviceversion.yaml.

Pass __undefined__ as PREVIOUS_VERSION when there is no CSV to replace.
`

// NewCmd returns the gen-csv root command. Commit metadata is read from source
// and the createdAt annotation from clk.
func NewCmd(source csvgen.VersionSource, clk clock.PassiveClock) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "gen-csv OUTPUT_DIR PREVIOUS_VERSION IMAGE_NAME",
		Short: "Generate an OLM ClusterServiceVersion",
		Long:  genCSVLong,
		Example: `  gen-csv hack/olm-registry/bundles __undefined__ quay.io/openshift-sre/dedicated-admin-operator:v0.1.1-3f73a59
  gen-csv --validate out 0.1.188-aaaaaaa quay.io/openshift-sre/dedicated-admin-operator:latest`,
		Args: cobra.MatchAll(cobra.ExactArgs(3), validImageArg),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool(debugFlag); debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid past this point; failures are not usage errors
			cmd.SilenceUsage = true
			// the error is logged below
			cmd.SilenceErrors = true

			config := csvgen.Config{
				OperatorName:    v.GetString(operatorNameFlag),
				VersionBase:     v.GetString(versionBaseFlag),
				TemplatePath:    v.GetString(templateFlag),
				ManifestsDir:    v.GetString(manifestsDirFlag),
				OutputDir:       args[0],
				PreviousVersion: args[1],
				Image:           args[2],
			}
			logger := logrus.WithField("operator", config.OperatorName)

			opts := []csvgen.Option{
				csvgen.WithClock(clk),
				csvgen.WithLogger(logger),
			}
			if v.GetBool(validateFlag) {
				opts = append(opts, csvgen.WithValidator(func(csv *unstructured.Unstructured) error {
					return validation.ValidateCSV(csv, logger)
				}))
			}

			result, err := csvgen.NewGenerator(config, source, opts...).Generate(cmd.Context())
			if err != nil {
				logger.WithError(err).Error("failed to generate ClusterServiceVersion")
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote ClusterServiceVersion: %s\n", result.Path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String(operatorNameFlag, csvgen.DefaultOperatorName, "name of the operator, its ClusterRole and its Deployment")
	flags.String(versionBaseFlag, csvgen.DefaultVersionBase, "major.minor prefix of the generated version")
	flags.String(templateFlag, csvgen.DefaultTemplatePath, "path to the CSV template")
	flags.String(manifestsDirFlag, csvgen.DefaultManifestsDir, "directory scanned for the operator's ClusterRole and Deployment")
	flags.Bool(validateFlag, false, "check the generated CSV before writing it")
	for _, name := range []string{operatorNameFlag, versionBaseFlag, templateFlag, manifestsDirFlag, validateFlag} {
		mustBindPFlag(v, name, flags.Lookup(name))
	}

	cmd.PersistentFlags().Bool(debugFlag, false, "enable debug logging")
	if err := cmd.PersistentFlags().MarkHidden(debugFlag); err != nil {
		logrus.Panic(err.Error())
	}

	version.AddCommand(cmd)

	return cmd
}

// validImageArg rejects an unparsable IMAGE_NAME before any work is done.
func validImageArg(cmd *cobra.Command, args []string) error {
	return csvgen.ValidateImage(args[2])
}

func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
