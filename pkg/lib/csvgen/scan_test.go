package csvgen

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/otiai10/copy"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger)
}

func deploymentImage(t *testing.T, u *unstructured.Unstructured) string {
	t.Helper()
	containers, _, err := unstructured.NestedSlice(u.Object, containersPath...)
	require.NoError(t, err)
	require.NotEmpty(t, containers)
	return containers[0].(map[string]interface{})["image"].(string)
}

func TestScanManifestsTestdata(t *testing.T) {
	manifests, err := ScanManifests(os.DirFS("testdata/manifests"), DefaultOperatorName, testLogger())
	require.NoError(t, err)

	require.Len(t, manifests.ClusterRoles, 1)
	assert.Equal(t, DefaultOperatorName, manifests.ClusterRoles[0].GetName())
	require.NotNil(t, manifests.Deployment)
	assert.Equal(t, "quay.io/example/placeholder:latest", deploymentImage(t, manifests.Deployment))
}

const matchingRole = `
kind: ClusterRole
metadata:
  name: dedicated-admin-operator
rules:
- verbs: [get]
  resources: [pods]
`

func deploymentDoc(image string) []byte {
	return []byte(`
kind: Deployment
metadata:
  name: dedicated-admin-operator
spec:
  template:
    spec:
      containers:
      - name: operator
        image: ` + image + "\n")
}

func TestScanManifests(t *testing.T) {
	tests := []struct {
		description  string
		fsys         fstest.MapFS
		clusterRoles int
		image        string
		errorMsg     string
	}{
		{
			description: "empty tree",
			fsys:        fstest.MapFS{},
		},
		{
			description: "several documents per file",
			fsys: fstest.MapFS{
				"all.yaml": &fstest.MapFile{Data: append([]byte(matchingRole+"---\n"), deploymentDoc("a:1")...)},
			},
			clusterRoles: 1,
			image:        "a:1",
		},
		{
			description: "non-matching names and kinds are ignored",
			fsys: fstest.MapFS{
				"other.yaml": &fstest.MapFile{Data: []byte(`
kind: ClusterRole
metadata:
  name: someone-else
rules: []
---
kind: Role
metadata:
  name: dedicated-admin-operator
rules: []
---
kind: Deployment
metadata:
  name: someone-else
spec: {}
---
kind: DaemonSet
metadata:
  name: dedicated-admin-operator
spec: {}
`)},
			},
		},
		{
			description: "every matching ClusterRole is kept",
			fsys: fstest.MapFS{
				"a/role.yaml": &fstest.MapFile{Data: []byte(matchingRole)},
				"b/role.yaml": &fstest.MapFile{Data: []byte(matchingRole)},
			},
			clusterRoles: 2,
		},
		{
			description: "last Deployment in walk order wins",
			fsys: fstest.MapFS{
				"a/deploy.yaml":        &fstest.MapFile{Data: deploymentDoc("first:1")},
				"b/nested/deploy.yaml": &fstest.MapFile{Data: deploymentDoc("second:1")},
			},
			image: "second:1",
		},
		{
			description: "ignored paths are skipped",
			fsys: fstest.MapFS{
				".csvignore":          &fstest.MapFile{Data: []byte("olm/\n*.tmpl.yaml\n")},
				"deploy.yaml":         &fstest.MapFile{Data: deploymentDoc("kept:1")},
				"olm/deploy.yaml":     &fstest.MapFile{Data: deploymentDoc("ignored-dir:1")},
				"zz/deploy.tmpl.yaml": &fstest.MapFile{Data: []byte("{{ not yaml")},
			},
			image: "kept:1",
		},
		{
			description: "malformed file aborts the scan",
			fsys: fstest.MapFS{
				"good.yaml": &fstest.MapFile{Data: []byte(matchingRole)},
				"bad.yaml":  &fstest.MapFile{Data: []byte("kind: [ClusterRole\n")},
			},
			errorMsg: "error parsing bad.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			manifests, err := ScanManifests(tt.fsys, DefaultOperatorName, testLogger())
			if tt.errorMsg != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			require.Len(t, manifests.ClusterRoles, tt.clusterRoles)
			if tt.image == "" {
				require.Nil(t, manifests.Deployment)
				return
			}
			require.NotNil(t, manifests.Deployment)
			require.Equal(t, tt.image, deploymentImage(t, manifests.Deployment))
		})
	}
}

func TestScanManifestsMissingDir(t *testing.T) {
	_, err := ScanManifests(os.DirFS("testdata/does-not-exist"), DefaultOperatorName, testLogger())
	require.Error(t, err)

	_, err = ScanManifests(nil, DefaultOperatorName, testLogger())
	require.Error(t, err)
}

func TestScanManifestsSymlinks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "manifests")
	require.NoError(t, copy.Copy("testdata/manifests", dir))
	if err := os.Symlink("deploy", filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy", "role.yaml"), []byte(matchingRole), 0644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "rbac.yaml"), filepath.Join(dir, "zz-rbac.yaml")))

	manifests, err := ScanManifests(os.DirFS(dir), DefaultOperatorName, testLogger())
	require.NoError(t, err)

	// the linked directory is not descended into, linked files are read
	require.Len(t, manifests.ClusterRoles, 3)
	require.NotNil(t, manifests.Deployment)
	assert.Equal(t, "quay.io/example/placeholder:latest", deploymentImage(t, manifests.Deployment))
}
