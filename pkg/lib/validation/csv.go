package validation

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	svg "github.com/h2non/go-is-svg"
	"github.com/operator-framework/api/pkg/operators"
	"github.com/operator-framework/api/pkg/operators/v1alpha1"
	"github.com/operator-framework/api/pkg/validation/errors"
	interfaces "github.com/operator-framework/api/pkg/validation/interfaces"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

func init() {
	t := types.NewType("svg", "image/svg+xml")
	filetype.AddMatcher(t, svg.Is)
	matchers.Image[t] = svg.Is
}

var GeneratedCSVValidator interfaces.Validator = interfaces.ValidatorFunc(validateCSVs)

func validateCSVs(objs ...interface{}) (results []errors.ManifestResult) {
	for _, obj := range objs {
		switch v := obj.(type) {
		case *unstructured.Unstructured:
			results = append(results, validateCSV(v))
		}
	}
	return results
}

func validateCSV(u *unstructured.Unstructured) (result errors.ManifestResult) {
	result.Name = u.GetName()

	if kind := u.GetKind(); kind != operators.ClusterServiceVersionKind {
		result.Add(errors.ErrInvalidParse(fmt.Sprintf("expected kind %s", operators.ClusterServiceVersionKind), kind))
		return result
	}
	if u.GetName() == "" {
		result.Add(errors.ErrFieldMissing("CSV has no name", "metadata.name", nil))
	}
	if _, ok, _ := unstructured.NestedString(u.Object, "metadata", "annotations", "createdAt"); !ok {
		result.Add(errors.WarnFieldMissing("CSV has no createdAt annotation", "metadata.annotations.createdAt", nil))
	}

	// Typed decoding catches non-semver versions and mistyped install strategy fields.
	data, err := json.Marshal(u.Object)
	if err != nil {
		result.Add(errors.ErrInvalidParse("error encoding CSV", err))
		return result
	}
	csv := v1alpha1.ClusterServiceVersion{}
	if err := json.Unmarshal(data, &csv); err != nil {
		result.Add(errors.ErrInvalidParse("error decoding ClusterServiceVersion", err))
		return result
	}

	if csv.Spec.Version.String() == "0.0.0" {
		result.Add(errors.ErrFieldMissing("CSV has no version", "spec.version", nil))
	}

	install := csv.Spec.InstallStrategy.StrategySpec
	if len(install.DeploymentSpecs) == 0 {
		result.Add(errors.ErrFieldMissing("CSV installs no deployments", "spec.install.spec.deployments", nil))
	} else {
		containers := install.DeploymentSpecs[0].Spec.Template.Spec.Containers
		if len(containers) == 0 || containers[0].Image == "" {
			result.Add(errors.ErrFieldMissing("first deployment has no container image",
				"spec.install.spec.deployments[0].spec.template.spec.containers[0].image", nil))
		}
	}

	if len(install.ClusterPermissions) == 0 {
		result.Add(errors.WarnFieldMissing("CSV requests no cluster permissions", "spec.install.spec.clusterPermissions", nil))
	}
	for i, perm := range install.ClusterPermissions {
		if perm.ServiceAccountName == "" {
			result.Add(errors.ErrFieldMissing("cluster permission has no service account",
				fmt.Sprintf("spec.install.spec.clusterPermissions[%d].serviceAccountName", i), nil))
		}
	}

	for i, icon := range csv.Spec.Icon {
		if err := validateIcon(icon); err != nil {
			result.Add(errors.ErrInvalidCSV(fmt.Sprintf("spec.icon[%d]: %v", i, err), u.GetName()))
		}
	}

	return result
}

func validateIcon(icon v1alpha1.Icon) error {
	data, err := base64.StdEncoding.DecodeString(icon.Data)
	if err != nil {
		return fmt.Errorf("icon data is not base64 encoded: %v", err)
	}
	if !filetype.IsImage(data) {
		return fmt.Errorf("icon data is not an image")
	}
	t, err := filetype.Match(data)
	if err != nil {
		return err
	}
	if t.MIME.Value != icon.MediaType {
		return fmt.Errorf("icon media type %q does not match detected media type %q", icon.MediaType, t.MIME.Value)
	}
	return nil
}

// ValidateCSV runs GeneratedCSVValidator against csv, logs warnings and returns the errors.
func ValidateCSV(csv *unstructured.Unstructured, logger *logrus.Entry) error {
	var errs []error
	for _, result := range GeneratedCSVValidator.Validate(csv) {
		for _, warn := range result.Warnings {
			logger.Warn(warn.Error())
		}
		for _, e := range result.Errors {
			errs = append(errs, e)
		}
	}
	return utilerrors.NewAggregate(errs)
}
