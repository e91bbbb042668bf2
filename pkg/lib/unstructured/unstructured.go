package unstructured

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	"k8s.io/apimachinery/pkg/util/yaml"
)

const decoderBufferSize = 4096

// ErrNoDocument is returned by FromReader when the input holds no object.
var ErrNoDocument = errors.New("no document found")

// AllFromReader decodes every YAML or JSON document in reader. Empty documents
// (comments only, bare separators, explicit nulls) are skipped. Objects are not
// required to carry a kind.
func AllFromReader(reader io.Reader) ([]*unstructured.Unstructured, error) {
	decoder := yaml.NewYAMLOrJSONDecoder(reader, decoderBufferSize)

	var unsts []*unstructured.Unstructured
	for i := 0; ; i++ {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("document %d: %w", i, err)
		}

		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}

		// util/json keeps integers as int64, which the unstructured helpers expect.
		obj := map[string]interface{}{}
		if err := utiljson.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		unsts = append(unsts, &unstructured.Unstructured{Object: obj})
	}

	return unsts, nil
}

// FromReader decodes the first non-empty document in reader.
func FromReader(reader io.Reader) (*unstructured.Unstructured, error) {
	unsts, err := AllFromReader(reader)
	if err != nil {
		return nil, err
	}
	if len(unsts) == 0 {
		return nil, ErrNoDocument
	}

	return unsts[0], nil
}

func FromString(str string) (*unstructured.Unstructured, error) {
	return FromReader(strings.NewReader(str))
}

func FromFile(filepath string) (*unstructured.Unstructured, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return FromReader(file)
}

// AllFromFS decodes every document of the file at name in fsys.
func AllFromFS(fsys fs.FS, name string) ([]*unstructured.Unstructured, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return AllFromReader(file)
}
