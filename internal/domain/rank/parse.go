package rank

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/teambalancer/internal/domain/model"
)

// Rank is a parsed rank description: either ApexRank or DivisionedRank.
type Rank interface {
	// Record converts the parsed rank into a storable record.
	Record() model.RankRecord
	isRank()
}

// ApexRank is a MASTER, GRANDMASTER or CHALLENGER standing.
type ApexRank struct {
	Tier   model.Tier
	Points int
}

// DivisionedRank is a standing in one of the six lower tiers.
type DivisionedRank struct {
	Tier     model.Tier
	Division int
	Points   int
}

func (ApexRank) isRank()       {}
func (DivisionedRank) isRank() {}

// Record implements Rank.
func (r ApexRank) Record() model.RankRecord {
	return model.RankRecord{Tier: r.Tier, Division: 0, Points: r.Points}
}

// Record implements Rank.
func (r DivisionedRank) Record() model.RankRecord {
	return model.RankRecord{Tier: r.Tier, Division: r.Division, Points: r.Points}
}

var romanDivisions = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5}

// Parse reads "<TIER> [<DIVISION>] [<POINTS>LP]". Apex tiers take the LP
// token straight after the tier; a division token, if present anyway, is
// validated and dropped. A missing LP token means zero points.
func Parse(raw string) (Rank, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty description", ErrMalformedRank)
	}
	tier, err := NormalizeTier(fields[0])
	if err != nil {
		return nil, err
	}
	rest := fields[1:]

	if IsApex(tier) {
		if len(rest) > 1 && !isPoints(rest[0]) && !strings.EqualFold(rest[1], "LP") {
			if _, err := parseDivision(rest[0]); err != nil {
				return nil, fmt.Errorf("%q: %w", raw, err)
			}
			rest = rest[1:]
		}
		points, err := parseTrailingPoints(raw, rest)
		if err != nil {
			return nil, err
		}
		return ApexRank{Tier: tier, Points: points}, nil
	}

	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: %q has no division", ErrMalformedRank, raw)
	}
	division, err := parseDivision(rest[0])
	if err != nil {
		return nil, fmt.Errorf("%q: %w", raw, err)
	}
	points, err := parseTrailingPoints(raw, rest[1:])
	if err != nil {
		return nil, err
	}
	return DivisionedRank{Tier: tier, Division: division, Points: points}, nil
}

// ParseRecord parses a description straight into a record.
func ParseRecord(raw string) (model.RankRecord, error) {
	r, err := Parse(raw)
	if err != nil {
		return model.RankRecord{}, err
	}
	return r.Record(), nil
}

// ParseHistory parses every description, keeping order.
func ParseHistory(raws []string) ([]model.RankRecord, error) {
	out := make([]model.RankRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := ParseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("season %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseDivision(tok string) (int, error) {
	if d, ok := romanDivisions[strings.ToUpper(tok)]; ok {
		return d, nil
	}
	d, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDivision, tok)
	}
	if _, err := DivisionOffset(d); err != nil {
		return 0, err
	}
	return d, nil
}

func isPoints(tok string) bool {
	return strings.HasSuffix(strings.ToUpper(tok), "LP")
}

// parseTrailingPoints accepts "", "<n>LP", "<n>" or "<n> LP".
func parseTrailingPoints(raw string, rest []string) (int, error) {
	switch {
	case len(rest) == 0:
		return 0, nil
	case len(rest) == 2 && strings.EqualFold(rest[1], "LP"):
		rest = rest[:1]
	case len(rest) > 1:
		return 0, fmt.Errorf("%w: %q has trailing tokens", ErrMalformedRank, raw)
	}
	tok := strings.TrimSpace(rest[0])
	if isPoints(tok) {
		tok = tok[:len(tok)-2]
	}
	n, err := strconv.Atoi(strings.ReplaceAll(tok, ",", ""))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q has bad points %q", ErrMalformedRank, raw, rest[0])
	}
	return n, nil
}
