package csvgen

import (
	"errors"
	"fmt"

	"github.com/distribution/reference"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

const (
	DefaultOperatorName = "dedicated-admin-operator"
	DefaultVersionBase  = "0.1"
	DefaultTemplatePath = "scripts/templates/csv-template.yaml"
	DefaultManifestsDir = "manifests"

	// UndefinedVersion is passed as the previous version when there is no prior release.
	UndefinedVersion = "__undefined__"
)

// Config holds everything a single generation run needs.
type Config struct {
	// OperatorName is matched against metadata.name of the scanned ClusterRole and
	// Deployment objects, and prefixes the CSV name.
	OperatorName string
	// VersionBase is the leading component of the computed version.
	VersionBase string
	// TemplatePath points at the CSV skeleton.
	TemplatePath string
	// ManifestsDir is scanned recursively for the operator's objects.
	ManifestsDir string

	OutputDir       string
	PreviousVersion string
	Image           string
}

// Complete fills unset fields with their defaults.
func (c *Config) Complete() {
	if c.OperatorName == "" {
		c.OperatorName = DefaultOperatorName
	}
	if c.VersionBase == "" {
		c.VersionBase = DefaultVersionBase
	}
	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplatePath
	}
	if c.ManifestsDir == "" {
		c.ManifestsDir = DefaultManifestsDir
	}
}

// Validate reports every missing or malformed field at once.
func (c Config) Validate() error {
	var errs []error
	if c.OperatorName == "" {
		errs = append(errs, errors.New("operator name must be set"))
	}
	if c.VersionBase == "" {
		errs = append(errs, errors.New("version base must be set"))
	}
	if c.TemplatePath == "" {
		errs = append(errs, errors.New("template path must be set"))
	}
	if c.ManifestsDir == "" {
		errs = append(errs, errors.New("manifests directory must be set"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory must be set"))
	}
	if c.PreviousVersion == "" {
		errs = append(errs, fmt.Errorf("previous version must be set, use %s when there is none", UndefinedVersion))
	}
	if err := ValidateImage(c.Image); err != nil {
		errs = append(errs, err)
	}
	return utilerrors.NewAggregate(errs)
}

// ValidateImage checks that image is a normalizable container image reference.
func ValidateImage(image string) error {
	if image == "" {
		return errors.New("image must be set")
	}
	if _, err := reference.ParseNormalizedNamed(image); err != nil {
		return fmt.Errorf("invalid image reference %q: %w", image, err)
	}
	return nil
}

// CSVName is the metadata.name of the CSV for version.
func (c Config) CSVName(version string) string {
	return fmt.Sprintf("%s.v%s", c.OperatorName, version)
}

// Replaces returns the CSV name the new version upgrades from, or false when
// there is no previous version or it equals the new one.
func (c Config) Replaces(version string) (string, bool) {
	if c.PreviousVersion == UndefinedVersion || c.PreviousVersion == version {
		return "", false
	}
	return c.CSVName(c.PreviousVersion), true
}
