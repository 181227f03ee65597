// Package roster reads the plaintext player list.
package roster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/teambalancer/internal/domain/dedupe"
)

// ErrInputFile marks any failure to open or read the roster.
var ErrInputFile = errors.New("input file error")

// Roster is the ordered, deduplicated list of player names.
type Roster struct {
	Names      []string
	Duplicates int
}

// ReadFile opens path and parses it with Read.
func ReadFile(ctx context.Context, path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Roster{}, fmt.Errorf("%w: %w", ErrInputFile, err)
	}
	defer func() { _ = f.Close() }()
	return Read(ctx, f)
}

// Read takes one name per line. Lines are trimmed, blank lines skipped and
// repeated names collapse into their first occurrence.
func Read(ctx context.Context, r io.Reader) (Roster, error) {
	d := dedupe.NewInMemoryDeduper()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		name := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if name == "" {
			continue
		}
		d.SeenAndRecord(ctx, name)
	}
	if err := sc.Err(); err != nil {
		return Roster{}, fmt.Errorf("%w: %w", ErrInputFile, err)
	}
	return Roster{Names: d.Order(), Duplicates: d.Duplicates()}, nil
}
