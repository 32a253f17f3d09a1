package fundamental

import (
	"context"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileSource serves metrics kept in memory, usually loaded from a YAML file of the form
//
//	companies:
//	  - code: sh.600000
//	    industry: Banking
//	    roeAvg: 9.2
type FileSource struct {
	metrics map[string]Metrics
}

type fileDocument struct {
	Companies []Metrics `yaml:"companies"`
}

// NewFileSource creates a FileSource from records. A later record replaces an
// earlier one with the same code.
func NewFileSource(records ...Metrics) *FileSource {
	metrics := make(map[string]Metrics, len(records))
	for _, m := range records {
		metrics[strings.ToLower(m.Code)] = m
	}

	return &FileSource{metrics: metrics}
}

// LoadFileSource reads a YAML metrics file.
func LoadFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFundamentalsFailed, err, "failed to read fundamentals %s", path)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFundamentalsFailed, err, "failed to parse fundamentals %s", path)
	}

	for i, m := range doc.Companies {
		if m.Code == "" {
			return nil, errors.Newf(errors.ErrCodeFundamentalsFailed, "fundamentals %s: company %d has no code", path, i)
		}
	}

	return NewFileSource(doc.Companies...), nil
}

// Metrics returns the record of code. Codes match case-insensitively.
func (f *FileSource) Metrics(_ context.Context, code string) (Metrics, error) {
	m, ok := f.metrics[strings.ToLower(code)]
	if !ok {
		return Metrics{}, errors.Newf(errors.ErrCodeDataNotFound, "no fundamentals for %s", code)
	}

	return m, nil
}
