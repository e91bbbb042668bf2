package csvgen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/utils/clock"
)

// ValidateFunc inspects the assembled CSV before it is written.
type ValidateFunc func(csv *unstructured.Unstructured) error

// Generator assembles a versioned ClusterServiceVersion from a template and
// the operator's RBAC and Deployment manifests.
type Generator struct {
	config   Config
	source   VersionSource
	clock    clock.PassiveClock
	logger   *logrus.Entry
	fsys     fs.FS
	validate ValidateFunc
}

type Option func(*Generator)

// WithClock sets the clock used for the createdAt annotation.
func WithClock(c clock.PassiveClock) Option {
	return func(g *Generator) {
		g.clock = c
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithManifestsFS scans fsys instead of Config.ManifestsDir.
func WithManifestsFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.fsys = fsys
	}
}

// WithValidator runs validate on the CSV before writing it.
func WithValidator(validate ValidateFunc) Option {
	return func(g *Generator) {
		g.validate = validate
	}
}

// NewGenerator returns a Generator for config. Unset config fields take their defaults.
func NewGenerator(config Config, source VersionSource, opts ...Option) *Generator {
	config.Complete()
	g := &Generator{
		config: config,
		source: source,
		clock:  clock.RealClock{},
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fsys == nil {
		g.fsys = os.DirFS(config.ManifestsDir)
	}
	return g
}

// Result describes a written CSV.
type Result struct {
	Version Version
	Path    string
	CSV     *unstructured.Unstructured
}

// Generate computes the version, assembles the CSV and writes it under the output directory.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	version, err := ComputeVersion(ctx, g.source, g.config.VersionBase)
	if err != nil {
		return nil, err
	}
	v := version.String()
	logger := g.logger.WithField("version", v)
	logger.Info("generating ClusterServiceVersion")
	if _, err := version.Semver(); err != nil {
		logger.Warnf("version is not valid semver and will be rejected by OLM: %v", err)
	}

	dir, err := EnsureVersionDir(g.config.OutputDir, g.config.OperatorName, v)
	if err != nil {
		return nil, err
	}

	csv, err := g.assemble(logger, v)
	if err != nil {
		return nil, err
	}

	if g.validate != nil {
		if err := g.validate(csv); err != nil {
			return nil, fmt.Errorf("generated CSV is invalid: %w", err)
		}
	}

	filePath := filepath.Join(dir, CSVFileName(g.config.OperatorName, v))
	if err := WriteCSV(csv, filePath); err != nil {
		return nil, err
	}

	return &Result{Version: version, Path: filePath, CSV: csv}, nil
}

func (g *Generator) assemble(logger *logrus.Entry, version string) (*unstructured.Unstructured, error) {
	csv, err := LoadTemplate(g.config.TemplatePath)
	if err != nil {
		return nil, err
	}

	if err := ResetClusterPermissions(csv); err != nil {
		return nil, fmt.Errorf("error resetting clusterPermissions in template %s: %w", g.config.TemplatePath, err)
	}

	manifests, err := ScanManifests(g.fsys, g.config.OperatorName, logger)
	if err != nil {
		return nil, fmt.Errorf("error scanning manifests %s: %w", g.config.ManifestsDir, err)
	}
	for _, role := range manifests.ClusterRoles {
		if err := AddClusterPermission(csv, role, g.config.OperatorName); err != nil {
			return nil, err
		}
	}
	if manifests.Deployment != nil {
		if err := SetDeploymentSpec(csv, manifests.Deployment); err != nil {
			return nil, err
		}
	}

	if err := SetOperatorImage(csv, g.config.Image); err != nil {
		return nil, fmt.Errorf("error setting operator image: %w", err)
	}

	if err := SetVersion(csv, g.config.CSVName(version), version); err != nil {
		return nil, err
	}
	if replaces, ok := g.config.Replaces(version); ok {
		if err := SetReplaces(csv, replaces); err != nil {
			return nil, err
		}
	}

	if err := SetCreatedAt(csv, g.clock.Now().UTC().Format(CreatedAtLayout)); err != nil {
		return nil, err
	}

	return csv, nil
}
