// Package manifest loads source manifests from YAML.
//
// A manifest file lists sources in federation order:
//
//	sources:
//	  - id: A
//	    record_count: 20
//	  - id: B
//	    record_count: 80
//	    page_size: 25
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

// ErrEmpty is returned when a manifest document is missing.
var ErrEmpty = errors.New("manifest: empty document")

type file struct {
	Sources []pageplan.Source `yaml:"sources"`
}

// Parse decodes a manifest document. Unknown fields are rejected. The result
// is not validated beyond decoding; the resolver validates counts and ids.
func Parse(r io.Reader) (pageplan.Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if f.Sources == nil {
		return pageplan.Manifest{}, nil
	}
	return pageplan.Manifest(f.Sources), nil
}

// Load reads and parses the manifest at path.
func Load(path string) (pageplan.Manifest, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open: %w", err)
	}
	defer fh.Close()

	m, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
