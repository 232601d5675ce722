package factories

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var phonePattern = regexp.MustCompile(`^\+233 0(24|54|55|26|27) \d{7}$`)

func TestCreateRestaurantRanges(t *testing.T) {
	rf := NewRestaurantFactory(rand.New(rand.NewSource(7)), models.GhanaBounds)
	foods := make(map[string]bool, len(Foods))
	for _, f := range Foods {
		foods[f] = true
	}

	for i := 0; i < 500; i++ {
		r := rf.CreateRestaurant(i)

		assert.GreaterOrEqual(t, r.AvgDailyOrders, 5)
		assert.Less(t, r.AvgDailyOrders, 55)
		assert.GreaterOrEqual(t, r.AvgRevenue, 100.0)
		assert.Less(t, r.AvgRevenue, 900.0)
		assert.GreaterOrEqual(t, r.CancellationRate, 0.0)
		assert.Less(t, r.CancellationRate, 0.3)
		assert.GreaterOrEqual(t, r.PeakHour, 12)
		assert.Less(t, r.PeakHour, 16)
		assert.Contains(t, Zones, r.Zone)
		assert.Contains(t, Locations, r.Location)
		assert.Regexp(t, phonePattern, r.Contact)
		assert.True(t, models.GhanaBounds.Contains(r.Coordinates), "coordinates %v out of bounds", r.Coordinates)
		assert.NotEmpty(t, r.Name)

		require.Len(t, r.TopItems, TopItemCount)
		seen := make(map[string]bool)
		for _, item := range r.TopItems {
			assert.True(t, foods[item], "unknown item %q", item)
			assert.False(t, seen[item], "duplicate item %q", item)
			seen[item] = true
		}
	}
}

func TestCreateRestaurantNaming(t *testing.T) {
	rf := NewRestaurantFactory(rand.New(rand.NewSource(1)), models.GhanaBounds)

	first := rf.CreateRestaurant(0)
	assert.Equal(t, "rest_1", first.ID)
	assert.Equal(t, RetailerNames[0], first.Name)

	past := rf.CreateRestaurant(len(RetailerNames) + 3)
	assert.Equal(t, "rest_252", past.ID)
	assert.NotEmpty(t, past.Name)
}

func TestCreateRestaurantDeterministic(t *testing.T) {
	a := NewRestaurantFactory(rand.New(rand.NewSource(99)), models.GhanaBounds)
	b := NewRestaurantFactory(rand.New(rand.NewSource(99)), models.GhanaBounds)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.CreateRestaurant(i), b.CreateRestaurant(i))
	}
}
