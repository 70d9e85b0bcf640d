// Package manifest loads a pipeline description from YAML: the ordered names of
// the steps to run and the fields the Context is seeded with.
//
//	context:
//	  data_dir: data
//	  weight_threshold: 1000
//	steps:
//	  - load_cars
//	  - find_heavy_cars
package manifest

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-datarails/pkg/datarails"
)

var ErrEmpty = errors.New("empty manifest")

type Manifest struct {
	Context map[string]any `yaml:"context"`
	Steps   []string       `yaml:"steps"`
}

// Load decodes a manifest. Unknown fields are rejected.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	m := &Manifest{}
	err := dec.Decode(m)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}

		return nil, errors.Wrap(err, "unable to decode manifest")
	}

	return m, nil
}

func LoadFile(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open manifest %s", path)
	}
	defer file.Close()

	m, err := Load(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load manifest %s", path)
	}

	return m, nil
}

// Build resolves the step names against reg and seeds a Context with the
// manifest fields. An unknown step name is a configuration error.
func (m *Manifest) Build(reg *datarails.Registry) ([]datarails.Definition, *datarails.Context, error) {
	defs, err := reg.Resolve(m.Steps)
	if err != nil {
		return nil, nil, err
	}

	return defs, datarails.NewContext(m.Context), nil
}
