package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/teambalancer/internal/domain/model"
)

const rule = "-------------------------------------------"

type console struct {
	w io.Writer
}

func (c console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func (c console) section() {
	c.printf("\n%s\n\n", rule)
}

func (c console) roster(names []string, duplicates int) {
	c.printf("Players found: %d\n", len(names))
	for _, n := range names {
		c.printf("    %s\n", n)
	}
	if duplicates > 0 {
		c.printf("Collapsed %d duplicate name(s)\n", duplicates)
	}
	c.section()
}

func (c console) scored(name string, score model.Score) {
	c.printf("Calculated score for %s: %.2f (%s)\n", name, score.Value, score.Basis)
}

func (c console) skipped(name string, err error) {
	c.printf("Skipping %s: %v\n", name, err)
}

func (c console) standings(cohort model.Cohort) {
	c.section()
	c.printf("Group median score: %.3f\n\n", cohort.MedianScore)
	for _, s := range cohort.Standings() {
		c.printf("%3d. %-24s %5.2f  %s\n", s.Position, s.PlayerID, s.Score, s.Basis)
	}
	if len(cohort.Skipped) > 0 {
		c.printf("\nSkipped: %s\n", strings.Join(cohort.Skipped, ", "))
	}
}

func (c console) saved(path string) {
	c.section()
	c.printf("Saved to file: %s\n", path)
}
