package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitrade_backend/models"
)

func TestFixtureStore(t *testing.T) {
	s := NewFixtureStore()

	all := s.All()
	require.Len(t, all, 5)
	for i, p := range all {
		assert.Equal(t, uint(i+1), p.ID)
		assert.Equal(t, models.StatusActive, p.Status)
		assert.True(t, p.Category.Valid(), p.Title)
		assert.True(t, p.Condition.Valid(), p.Title)
		assert.NotEmpty(t, p.Images)
	}

	p, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Maria Garcia", p.SellerName)

	_, ok = s.Get(99)
	assert.False(t, ok)
}

func TestStoreIsolation(t *testing.T) {
	src := Products()
	s := NewStore(src, Categories())

	src[0].Title = "changed"
	src[0].Images[0] = "changed"
	got, _ := s.Get(1)
	assert.NotEqual(t, "changed", got.Title)
	assert.NotEqual(t, "changed", got.Images[0])

	got.Images[0] = "mutated"
	*got.CurrentBid = 1
	again, _ := s.Get(1)
	assert.NotEqual(t, "mutated", again.Images[0])
	assert.NotEqual(t, int64(1), *again.CurrentBid)

	all := s.All()
	all[0].Title = "mutated"
	assert.NotEqual(t, "mutated", s.All()[0].Title)
}

func TestCategoryCounts(t *testing.T) {
	cats := NewFixtureStore().Categories()
	require.Len(t, cats, len(models.CategoryIDs))

	counts := make(map[models.CategoryID]int64)
	for _, c := range cats {
		counts[c.ID] = c.Count
	}
	assert.Equal(t, int64(2), counts[models.CategoryElectronics])
	assert.Equal(t, int64(1), counts[models.CategoryBooks])
	assert.Equal(t, int64(1), counts[models.CategorySports])
	assert.Equal(t, int64(1), counts[models.CategoryFurniture])
	assert.Zero(t, counts[models.CategoryVehicles])

	base := Categories()
	_ = WithCounts(base, map[models.CategoryID]int64{models.CategoryOther: 3})
	for _, c := range base {
		assert.Zero(t, c.Count, "input categories must not be modified")
	}
}

func TestSellersOwnFixtures(t *testing.T) {
	sellers := make(map[uint]string)
	for _, u := range Sellers() {
		sellers[u.ID] = u.Name
	}
	for _, p := range Products() {
		assert.Equal(t, sellers[p.SellerID], p.SellerName, "product %d", p.ID)
	}
}
