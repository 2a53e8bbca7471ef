package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
  {"_id": {"$oid": "5d51694802b2373622ff552c"}, "categories": "dairy", "weight": 100,
   "title": {"en": "Whole milk"}, "calories": 60, "groupBloodNotAllowed": [null, true, true, false, false]},
  {"_id": "5d51694802b2373622ff553b", "categories": "cereals", "weight": 100,
   "title": {"en": "Buckwheat"}, "calories": 313, "groupBloodNotAllowed": [null, true, false, true, false]},
  {"_id": "5d51694802b2373622ff554d", "categories": "dairy", "weight": 100,
   "title": {"en": "Hard cheese"}, "calories": 364, "groupBloodNotAllowed": [null, true, false, false, true]},
  {"_id": "5d51694802b2373622ff555e", "categories": "fish", "weight": 100,
   "title": {"en": "Cod fillet"}, "calories": 69, "groupBloodNotAllowed": [null, false, false, false, false]}
]`

func TestParse_ObjectIDForms(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	assert.Equal(t, "5d51694802b2373622ff552c", c.products[0].ID)
	assert.Equal(t, "5d51694802b2373622ff553b", c.products[1].ID)
	assert.Equal(t, [5]bool{false, true, true, false, false}, c.products[0].GroupBloodNotAllowed)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"not": "an array"}`))
	require.Error(t, err)

	_, err = Parse([]byte(`[{"_id": "x", "title": {}}]`))
	require.Error(t, err)

	_, err = Parse([]byte(`[{"_id": 42, "title": {"en": "Rice"}}]`))
	require.ErrorContains(t, err, "product 0")

	_, err = Parse([]byte(`[{"_id": {"$oid": "not-hex"}, "title": {"en": "Rice"}}]`))
	require.Error(t, err)
}

func TestParse_ExtendedJSONFields(t *testing.T) {
	c, err := Parse([]byte(`[{"_id": {"$oid": "5d51694802b2373622ff556f"}, "categories": "grains",
	  "weight": {"$numberDouble": "100.5"}, "calories": 130,
	  "title": {"en": "Rice", "ru": "Рис", "ua": "Рис"}, "groupBloodNotAllowed": [null, false, true]}]`))
	require.NoError(t, err)

	p := c.products[0]
	assert.Equal(t, "5d51694802b2373622ff556f", p.ID)
	assert.Equal(t, 100.5, p.Weight)
	assert.Equal(t, 130.0, p.Calories)
	assert.Equal(t, "Рис", p.Title.RU)
	assert.Equal(t, [5]bool{false, false, true, false, false}, p.GroupBloodNotAllowed)
}

func TestNotAllowedCategories_UniqueInCatalogOrder(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)

	assert.Equal(t, []string{"dairy", "cereals"}, c.NotAllowedCategories(1))
	assert.Equal(t, []string{"dairy"}, c.NotAllowedCategories(2))
	assert.Equal(t, []string{"cereals"}, c.NotAllowedCategories(3))
	assert.Equal(t, []string{"dairy"}, c.NotAllowedCategories(4))
	assert.Empty(t, c.NotAllowedCategories(0))
	assert.Empty(t, c.NotAllowedCategories(5))
}

func TestSearch_CaseInsensitive(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)

	found := c.Search("CHEE")
	require.Len(t, found, 1)
	assert.Equal(t, "Hard cheese", found[0].Title.EN)

	assert.Len(t, c.Search("e"), 4)
	assert.Empty(t, c.Search("pizza"))
}

func TestEmbedded_LoadedOnce(t *testing.T) {
	a, err := Embedded()
	require.NoError(t, err)
	b, err := Embedded()
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Greater(t, a.Len(), 0)
	for bt := 1; bt <= 4; bt++ {
		assert.NotEmpty(t, a.NotAllowedCategories(bt), "blood type %d", bt)
	}
}
