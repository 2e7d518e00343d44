package methods

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Operations []Declaration `yaml:"operations"`
}

// LoadCatalog decodes a YAML catalog of the form
//
//	operations:
//	  - operation: conversations.list
//	    strategy: cursor
//	    items: channels
//
// Unknown keys are rejected so that typos do not silently disable pagination.
func LoadCatalog(r io.Reader) ([]Declaration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return file.Operations, nil
}

// LoadRegistry decodes a YAML catalog and builds a Registry from it.
func LoadRegistry(r io.Reader) (*Registry, error) {
	decls, err := LoadCatalog(r)
	if err != nil {
		return nil, err
	}
	return NewRegistry(decls)
}

// WriteCatalog encodes decls in the format LoadCatalog reads.
func WriteCatalog(w io.Writer, decls []Declaration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Operations: decls}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// DefaultCatalog returns the Registry built from the embedded catalog.
// It is built once; later calls return the same instance.
func DefaultCatalog() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = LoadRegistry(bytes.NewReader(defaultCatalog))
	})
	return defaultRegistry, defaultErr
}

// MustDefaultCatalog is like DefaultCatalog but panics on error.
func MustDefaultCatalog() *Registry {
	reg, err := DefaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return reg
}
