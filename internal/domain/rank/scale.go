// Package rank maps upstream tier and division markers onto one continuous
// numeric scale and parses raw rank descriptions.
package rank

import (
	"fmt"
	"strings"

	"github.com/okian/teambalancer/internal/domain/model"
)

// MaxValue is the highest value a record can map to (CHALLENGER plus the
// largest division offset).
const MaxValue = 8.75

var tierOrder = []model.Tier{
	model.TierIron,
	model.TierBronze,
	model.TierSilver,
	model.TierGold,
	model.TierPlatinum,
	model.TierDiamond,
	model.TierMaster,
	model.TierGrandmaster,
	model.TierChallenger,
}

// Division 1 is the strongest sub-tier and sits closest to the next tier.
var divisionOffsets = map[int]float64{
	0: 0,
	1: 0.75,
	2: 0.50,
	3: 0.25,
	4: 0,
	5: 0,
}

// Tiers returns the tier enumeration in ascending order.
func Tiers() []model.Tier {
	out := make([]model.Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// NormalizeTier resolves a tier name regardless of casing or padding.
func NormalizeTier(name string) (model.Tier, error) {
	t := model.Tier(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range tierOrder {
		if t == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// TierIndex returns the ordinal of the tier, IRON=0 through CHALLENGER=8.
func TierIndex(tier model.Tier) (int, error) {
	t, err := NormalizeTier(string(tier))
	if err != nil {
		return 0, err
	}
	for i, known := range tierOrder {
		if known == t {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
}

// IsApex reports whether the tier carries no divisions.
func IsApex(tier model.Tier) bool {
	t, err := NormalizeTier(string(tier))
	if err != nil {
		return false
	}
	return t == model.TierMaster || t == model.TierGrandmaster || t == model.TierChallenger
}

// DivisionOffset returns the fractional contribution of a division marker.
func DivisionOffset(division int) (float64, error) {
	off, ok := divisionOffsets[division]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDivision, division)
	}
	return off, nil
}

// Value maps a record onto the scale. Apex tiers never gain a division
// offset, whatever division the record carries.
func Value(rec model.RankRecord) (float64, error) {
	idx, err := TierIndex(rec.Tier)
	if err != nil {
		return 0, err
	}
	if IsApex(rec.Tier) {
		return float64(idx), nil
	}
	off, err := DivisionOffset(rec.Division)
	if err != nil {
		return 0, err
	}
	return float64(idx) + off, nil
}
