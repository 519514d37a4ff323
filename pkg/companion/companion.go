// Package companion proposes companion plants for a species using a small
// table of rules keyed by botanical family.
package companion

import (
	"context"
	"fmt"
	"sync"

	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/templates"
	"gopkg.in/yaml.v3"
)

// Rule names a genus that grows well next to species of a family.
type Rule struct {
	Genus   string `yaml:"genus"`
	Benefit string `yaml:"benefit"`
}

// Rules maps a family name to its companion rules.
type Rules map[string][]Rule

// Finder looks up a stored species of a genus. It returns false if there
// is no such species.
type Finder interface {
	FindOneSpeciesByGenus(ctx context.Context, genus string) (agro.Species, bool, error)
}

// ParseRules reads rules from YAML.
func ParseRules(data []byte) (Rules, error) {
	var res Rules
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("cannot parse companion rules: %w", err)
	}
	for family, rules := range res {
		for _, v := range rules {
			if v.Genus == "" || v.Benefit == "" {
				return nil, fmt.Errorf("incomplete companion rule for %s", family)
			}
			if !knownBenefit(v.Benefit) {
				return nil, fmt.Errorf("unknown benefit %q of %s rule for %s",
					v.Benefit, v.Genus, family)
			}
		}
	}
	return res, nil
}

// DefaultRules returns the embedded rule table.
var DefaultRules = sync.OnceValues(func() (Rules, error) {
	return ParseRules([]byte(templates.CompanionsYAML))
})

func knownBenefit(b string) bool {
	switch b {
	case agro.BenefitNitrogenFixing, agro.BenefitGroundCover:
		return true
	}
	return false
}

// Resolve finds companions for a species. Rules with no matching stored
// species are skipped, as well as a match to the species itself. A family
// without rules gives an empty result.
func (r Rules) Resolve(
	ctx context.Context,
	f Finder,
	sp agro.Species,
) ([]agro.CompanionPlant, error) {
	var res []agro.CompanionPlant
	for _, rule := range r[sp.Family] {
		comp, ok, err := f.FindOneSpeciesByGenus(ctx, rule.Genus)
		if err != nil {
			return res, err
		}
		if !ok || comp.ID == sp.ID {
			continue
		}
		res = append(res, agro.CompanionPlant{
			SpeciesAID:       sp.ID,
			SpeciesBID:       comp.ID,
			RelationshipType: agro.RelationshipCompatible,
			BenefitType:      rule.Benefit,
			CompanionName:    comp.ScientificName,
		})
	}
	return res, nil
}
