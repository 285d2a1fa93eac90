// Package dataset loads and validates country metric datasets.
package dataset

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/dataset.cue
var schemaFS embed.FS

// Dataset errors.
var (
	ErrInvalidDataset     = eris.New("invalid dataset")
	ErrEmptyDataset       = eris.New("dataset has no countries")
	ErrDatasetUnavailable = eris.New("dataset unavailable")
)

// Country is one dataset entry.
type Country struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Region     string         `json:"region" yaml:"region"`
	PriorScore *float64       `json:"prior_score,omitempty" yaml:"prior_score"`
	Metrics    map[string]any `json:"metrics" yaml:"metrics"`
}

// Dataset is a versioned collection of country metrics.
type Dataset struct {
	Version     string    `json:"version" yaml:"version"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Countries   []Country `json:"countries" yaml:"countries"`
}

// Load reads a YAML or JSON dataset from disk.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrDatasetUnavailable, "read dataset %s: %v", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "load dataset %s", path)
	}
	return ds, nil
}

// Parse decodes and validates dataset bytes. JSON is accepted as YAML.
func Parse(data []byte) (*Dataset, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(ErrInvalidDataset, err.Error())
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, eris.Wrap(ErrInvalidDataset, err.Error())
	}
	if len(ds.Countries) == 0 {
		return nil, ErrEmptyDataset
	}

	seen := make(map[string]struct{}, len(ds.Countries))
	for _, c := range ds.Countries {
		key := strings.ToLower(c.ID)
		if _, dup := seen[key]; dup {
			return nil, eris.Wrapf(algo.ErrDuplicateCountry, "country %q", c.ID)
		}
		seen[key] = struct{}{}
	}
	return &ds, nil
}

// validateSchema checks a decoded document against the embedded #Dataset definition.
func validateSchema(doc map[string]any) error {
	src, err := schemaFS.ReadFile("schemas/dataset.cue")
	if err != nil {
		return eris.Wrap(err, "read dataset schema")
	}

	ctx := cuecontext.New()
	schemaVal := ctx.CompileBytes(src, cue.Filename("dataset.cue"))
	if err := schemaVal.Err(); err != nil {
		return eris.Wrap(err, "compile dataset schema")
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Dataset"))

	dataVal := ctx.Encode(doc)
	if err := dataVal.Err(); err != nil {
		return eris.Wrap(ErrInvalidDataset, err.Error())
	}

	unified := def.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return eris.Wrap(ErrInvalidDataset, err.Error())
	}
	return nil
}

// Raw returns the engine input for the country.
func (c Country) Raw() schema.RawCountryMetrics {
	return schema.RawCountryMetrics{
		ID:      c.ID,
		Name:    c.Name,
		Region:  c.Region,
		Metrics: c.Metrics,
	}
}

// InputVersion is a content hash of the country's scoring inputs.
// It changes whenever any metric value, name or region changes.
func (c Country) InputVersion() string {
	data, err := json.Marshal(c.Raw())
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Metrics returns the engine inputs for every country, in file order.
func (d *Dataset) Metrics() []schema.RawCountryMetrics {
	out := make([]schema.RawCountryMetrics, len(d.Countries))
	for i, c := range d.Countries {
		out[i] = c.Raw()
	}
	return out
}

// Priors returns the prior overall scores recorded in the dataset.
func (d *Dataset) Priors() map[string]float64 {
	priors := make(map[string]float64)
	for _, c := range d.Countries {
		if c.PriorScore != nil {
			priors[c.ID] = *c.PriorScore
		}
	}
	return priors
}

// InputVersions maps each country id to its input version.
func (d *Dataset) InputVersions() map[string]string {
	versions := make(map[string]string, len(d.Countries))
	for _, c := range d.Countries {
		versions[c.ID] = c.InputVersion()
	}
	return versions
}
