package companion_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/companion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finderMock struct {
	byGenus map[string]agro.Species
	err     error
	calls   []string
}

func (f *finderMock) FindOneSpeciesByGenus(
	_ context.Context,
	genus string,
) (agro.Species, bool, error) {
	f.calls = append(f.calls, genus)
	if f.err != nil {
		return agro.Species{}, false, f.err
	}
	sp, ok := f.byGenus[genus]
	return sp, ok, nil
}

func TestDefaultRules(t *testing.T) {
	rules, err := companion.DefaultRules()
	require.NoError(t, err)
	assert.Equal(t, []string{"Fabaceae", "Poaceae"},
		slices.Sorted(maps.Keys(rules)))
	assert.Equal(t, []companion.Rule{
		{Genus: "Zea", Benefit: agro.BenefitNitrogenFixing},
		{Genus: "Solanum", Benefit: agro.BenefitNitrogenFixing},
	}, rules["Fabaceae"])
	assert.Equal(t, []companion.Rule{
		{Genus: "Phaseolus", Benefit: agro.BenefitNitrogenFixing},
		{Genus: "Cucurbita", Benefit: agro.BenefitGroundCover},
	}, rules["Poaceae"])
}

func TestParseRules(t *testing.T) {
	_, err := companion.ParseRules([]byte("Fabaceae:\n  - genus: Zea\n"))
	assert.Error(t, err)

	_, err = companion.ParseRules([]byte("not: [valid"))
	assert.Error(t, err)

	_, err = companion.ParseRules(
		[]byte("Fabaceae:\n  - genus: Zea\n    benefit: shade\n"))
	assert.ErrorContains(t, err, `unknown benefit "shade"`)

	rules, err := companion.ParseRules(
		[]byte("Poaceae:\n  - genus: Cucurbita\n    benefit: ground_cover\n"))
	require.NoError(t, err)
	assert.Equal(t, []companion.Rule{
		{Genus: "Cucurbita", Benefit: agro.BenefitGroundCover},
	}, rules["Poaceae"])
}

func TestResolve(t *testing.T) {
	rules, err := companion.DefaultRules()
	require.NoError(t, err)
	ctx := context.Background()

	f := &finderMock{byGenus: map[string]agro.Species{
		"Zea":       {ID: 20, ScientificName: "Zea mays", Genus: "Zea"},
		"Phaseolus": {ID: 30, ScientificName: "Phaseolus vulgaris"},
		"Cucurbita": {ID: 40, ScientificName: "Cucurbita pepo"},
	}}

	t.Run("Fabaceae with one miss", func(t *testing.T) {
		f.calls = nil
		sp := agro.Species{ID: 1, ScientificName: "Glycine max", Family: "Fabaceae"}
		res, err := rules.Resolve(ctx, f, sp)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zea", "Solanum"}, f.calls)
		require.Len(t, res, 1)
		assert.Equal(t, agro.CompanionPlant{
			SpeciesAID:       1,
			SpeciesBID:       20,
			RelationshipType: "compatible",
			BenefitType:      "nitrogen_fixing",
			CompanionName:    "Zea mays",
		}, res[0])
	})

	t.Run("Poaceae skips itself", func(t *testing.T) {
		sp := agro.Species{ID: 30, ScientificName: "Phaseolus vulgaris", Family: "Poaceae"}
		res, err := rules.Resolve(ctx, f, sp)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, 40, res[0].SpeciesBID)
		assert.Equal(t, "ground_cover", res[0].BenefitType)
	})

	t.Run("family without rules", func(t *testing.T) {
		f.calls = nil
		sp := agro.Species{ID: 2, ScientificName: "Rosa canina", Family: "Rosaceae"}
		res, err := rules.Resolve(ctx, f, sp)
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.Empty(t, f.calls)
	})

	t.Run("lookup error", func(t *testing.T) {
		bad := &finderMock{err: errors.New("conn lost")}
		sp := agro.Species{ID: 1, ScientificName: "Glycine max", Family: "Fabaceae"}
		_, err := rules.Resolve(ctx, bad, sp)
		assert.Error(t, err)
	})
}
