package output

import (
	"context"
	"encoding/json"
	"os"

	"github.com/okian/teambalancer/internal/domain/model"
)

// JSONCodec writes indented, key-sorted JSON.
type JSONCodec struct{}

func (JSONCodec) Extension() string { return "json" }

func (JSONCodec) Write(_ context.Context, path string, c model.Cohort) error {
	data, err := json.MarshalIndent(toDocument(c), "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func (JSONCodec) Read(_ context.Context, path string) (model.Cohort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Cohort{}, err
	}
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return model.Cohort{}, err
	}
	return d.cohort(), nil
}
