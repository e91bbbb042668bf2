package csvgen

import (
	"fmt"
	"io/fs"

	"github.com/joelanford/ignore"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	libunstructured "github.com/openshift/dedicated-admin-operator/pkg/lib/unstructured"
)

const (
	ClusterRoleKind = "ClusterRole"
	DeploymentKind  = "Deployment"

	// IgnoreFilename holds gitignore-style patterns of paths the scan skips.
	IgnoreFilename = ".csvignore"
)

// Manifests are the operator objects found in a manifests tree.
type Manifests struct {
	// ClusterRoles in walk order.
	ClusterRoles []*unstructured.Unstructured
	// Deployment is the last matching Deployment in walk order, nil if none.
	Deployment *unstructured.Unstructured
}

// ScanManifests walks fsys and collects every ClusterRole and Deployment named
// operatorName. Files may hold several documents; objects of any other kind or
// name are skipped. Any file that fails to parse aborts the scan.
func ScanManifests(fsys fs.FS, operatorName string, logger *logrus.Entry) (*Manifests, error) {
	if fsys == nil {
		return nil, fmt.Errorf("no manifests filesystem provided")
	}
	matcher, err := ignore.NewMatcher(fsys, IgnoreFilename)
	if err != nil {
		return nil, err
	}

	manifests := &Manifests{}
	err = fs.WalkDir(fsys, ".", func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != "." && matcher.Match(path, true) {
				return fs.SkipDir
			}
			return nil
		}
		if info.Type()&fs.ModeSymlink != 0 {
			// links to directories are neither parsed nor followed
			if target, err := fs.Stat(fsys, path); err == nil && target.IsDir() {
				logger.Debugf("skipping directory link %s", path)
				return nil
			}
		}
		if info.Name() == IgnoreFilename || matcher.Match(path, false) {
			logger.Debugf("skipping ignored file %s", path)
			return nil
		}

		objs, err := libunstructured.AllFromFS(fsys, path)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}

		for _, obj := range objs {
			if obj.GetName() != operatorName {
				continue
			}
			switch obj.GetKind() {
			case ClusterRoleKind:
				logger.Infof("found ClusterRole %s in %s", operatorName, path)
				manifests.ClusterRoles = append(manifests.ClusterRoles, obj)
			case DeploymentKind:
				if manifests.Deployment != nil {
					logger.Warnf("Deployment %s in %s overrides an earlier one", operatorName, path)
				} else {
					logger.Infof("found Deployment %s in %s", operatorName, path)
				}
				manifests.Deployment = obj
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return manifests, nil
}
