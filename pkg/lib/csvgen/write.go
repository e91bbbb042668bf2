package csvgen

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

const DefaultPermission = 0644

// CSVFileName is the name of the CSV file for version.
func CSVFileName(operatorName, version string) string {
	return fmt.Sprintf("%s.v%s.clusterserviceversion.yaml", operatorName, version)
}

// VersionDir is <outputDir>/<operatorName>/<version>.
func VersionDir(outputDir, operatorName, version string) string {
	return filepath.Join(outputDir, operatorName, version)
}

// EnsureVersionDir creates the versioned bundle directory and its parents.
// Existing directories are left alone.
func EnsureVersionDir(outputDir, operatorName, version string) (string, error) {
	dir := VersionDir(outputDir, operatorName, version)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("error creating output directory %s: %w", dir, err)
	}
	return dir, nil
}

// WriteCSV writes csv to filePath as block-style YAML, replacing any existing file.
func WriteCSV(csv *unstructured.Unstructured, filePath string) error {
	bytes, err := yaml.Marshal(csv.Object)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, bytes, DefaultPermission); err != nil {
		return fmt.Errorf("error writing CSV file: %v", err)
	}

	return nil
}
