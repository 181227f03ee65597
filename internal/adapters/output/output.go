// Package output serializes a scored cohort to disk and reads it back.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/teambalancer/internal/domain/model"
)

// Sentinel kinds for output errors.
var (
	ErrOutputWrite   = errors.New("output write failed")
	ErrOutputRead    = errors.New("output read failed")
	ErrUnknownFormat = errors.New("unknown output format")
)

// Codec persists a cohort in one file format.
type Codec interface {
	// Extension is the file extension without the dot.
	Extension() string
	Write(ctx context.Context, path string, c model.Cohort) error
	Read(ctx context.Context, path string) (model.Cohort, error)
}

// ForFormat returns the codec for json, yaml or sqlite.
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONCodec{}, nil
	case "yaml":
		return YAMLCodec{}, nil
	case "sqlite":
		return SQLiteCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Path joins dir, base and the codec extension.
func Path(dir, base string, c Codec) string {
	return filepath.Join(dir, base+"."+c.Extension())
}

// Save writes the cohort to dir/base.<ext> and returns the path.
func Save(ctx context.Context, codec Codec, dir, base string, c model.Cohort) (string, error) {
	path := Path(dir, base, codec)
	if err := codec.Write(ctx, path, c); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	return path, nil
}

// Load reads a cohort written by Save.
func Load(ctx context.Context, codec Codec, path string) (model.Cohort, error) {
	c, err := codec.Read(ctx, path)
	if err != nil {
		return model.Cohort{}, fmt.Errorf("%w: %s: %w", ErrOutputRead, path, err)
	}
	return c, nil
}

// writeFileAtomic replaces path only once data is fully on disk.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
