package csvgen

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	libunstructured "github.com/openshift/dedicated-admin-operator/pkg/lib/unstructured"
)

// CreatedAtLayout is the format of the metadata.annotations.createdAt stamp.
const CreatedAtLayout = "2006-01-02T15:04:05Z"

var (
	installSpecPath        = []string{"spec", "install", "spec"}
	clusterPermissionsPath = append(append([]string{}, installSpecPath...), "clusterPermissions")
	deploymentsPath        = append(append([]string{}, installSpecPath...), "deployments")
	containersPath         = []string{"spec", "template", "spec", "containers"}
)

// LoadTemplate reads the CSV skeleton at path.
func LoadTemplate(path string) (*unstructured.Unstructured, error) {
	csv, err := libunstructured.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading CSV template %s: %w", path, err)
	}
	return csv, nil
}

// ResetClusterPermissions empties spec.install.spec.clusterPermissions.
func ResetClusterPermissions(csv *unstructured.Unstructured) error {
	if _, err := nestedMap(csv.Object, installSpecPath...); err != nil {
		return err
	}
	return unstructured.SetNestedSlice(csv.Object, []interface{}{}, clusterPermissionsPath...)
}

// AddClusterPermission appends the rules of role to spec.install.spec.clusterPermissions,
// bound to serviceAccountName.
func AddClusterPermission(csv, role *unstructured.Unstructured, serviceAccountName string) error {
	rules, ok := role.Object["rules"]
	if !ok {
		return fmt.Errorf("ClusterRole %s has no rules", role.GetName())
	}

	perms, _, err := unstructured.NestedSlice(csv.Object, clusterPermissionsPath...)
	if err != nil {
		return err
	}
	perms = append(perms, map[string]interface{}{
		"rules":              rules,
		"serviceAccountName": serviceAccountName,
	})

	return unstructured.SetNestedSlice(csv.Object, perms, clusterPermissionsPath...)
}

// SetDeploymentSpec replaces spec.install.spec.deployments[0].spec with the spec of deployment.
func SetDeploymentSpec(csv, deployment *unstructured.Unstructured) error {
	spec, ok := deployment.Object["spec"]
	if !ok {
		return fmt.Errorf("Deployment %s has no spec", deployment.GetName())
	}

	target, err := firstDeployment(csv)
	if err != nil {
		return err
	}
	target["spec"] = runtime.DeepCopyJSONValue(spec)

	return nil
}

// SetOperatorImage points the first container of the first install deployment at image.
func SetOperatorImage(csv *unstructured.Unstructured, image string) error {
	deployment, err := firstDeployment(csv)
	if err != nil {
		return err
	}

	container, err := firstElement(deployment, containersPath...)
	if err != nil {
		return fmt.Errorf("%s: %w", strings.Join(deploymentsPath, ".")+"[0]", err)
	}
	container["image"] = image

	return nil
}

// SetVersion stamps metadata.name and spec.version.
func SetVersion(csv *unstructured.Unstructured, name, version string) error {
	if err := unstructured.SetNestedField(csv.Object, name, "metadata", "name"); err != nil {
		return err
	}
	return unstructured.SetNestedField(csv.Object, version, "spec", "version")
}

// SetReplaces sets spec.replaces.
func SetReplaces(csv *unstructured.Unstructured, replaces string) error {
	return unstructured.SetNestedField(csv.Object, replaces, "spec", "replaces")
}

// SetCreatedAt sets the metadata.annotations.createdAt stamp.
func SetCreatedAt(csv *unstructured.Unstructured, createdAt string) error {
	return unstructured.SetNestedField(csv.Object, createdAt, "metadata", "annotations", "createdAt")
}

func firstDeployment(csv *unstructured.Unstructured) (map[string]interface{}, error) {
	return firstElement(csv.Object, deploymentsPath...)
}

// firstElement returns element 0 of the list at fields, which must be an object.
func firstElement(obj map[string]interface{}, fields ...string) (map[string]interface{}, error) {
	path := strings.Join(fields, ".")

	val, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s not found", path)
	}
	list, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s accessor error: %v is of the type %T, expected []interface{}", path, val, val)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s has no element at index 0", path)
	}
	elem, ok := list[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s[0] accessor error: %v is of the type %T, expected map[string]interface{}", path, list[0], list[0])
	}

	return elem, nil
}

func nestedMap(obj map[string]interface{}, fields ...string) (map[string]interface{}, error) {
	path := strings.Join(fields, ".")

	val, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s not found", path)
	}
	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s accessor error: %v is of the type %T, expected map[string]interface{}", path, val, val)
	}

	return m, nil
}
