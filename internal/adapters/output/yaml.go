package output

import (
	"bytes"
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/teambalancer/internal/domain/model"
)

// YAMLCodec writes key-sorted YAML.
type YAMLCodec struct{}

func (YAMLCodec) Extension() string { return "yaml" }

func (YAMLCodec) Write(_ context.Context, path string, c model.Cohort) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(c)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

func (YAMLCodec) Read(_ context.Context, path string) (model.Cohort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Cohort{}, err
	}
	var d document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return model.Cohort{}, err
	}
	return d.cohort(), nil
}
