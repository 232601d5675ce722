package factories

import (
	"fmt"
	"math/rand"

	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/jaswdr/faker"
)

const (
	TopItemCount = 5

	minDailyOrders  = 5
	dailyOrderSpan  = 50 // avgDailyOrders in [5, 55)
	minRevenue      = 100
	revenueSpan     = 800
	maxCancellation = 0.3
	firstPeakHour   = 12
	peakHourSpan    = 4 // lunch peak in [12, 16)
)

// RestaurantFactory builds restaurants from a single seeded random source so a
// population can be reproduced exactly.
type RestaurantFactory struct {
	rng    *rand.Rand
	fake   faker.Faker
	bounds models.BoundingBox
}

func NewRestaurantFactory(rng *rand.Rand, bounds models.BoundingBox) *RestaurantFactory {
	return &RestaurantFactory{
		rng:    rng,
		fake:   faker.NewWithSeed(rand.NewSource(rng.Int63())),
		bounds: bounds,
	}
}

// CreateRestaurant builds the restaurant at position index (zero based) of the
// population. IDs are sequential: rest_1, rest_2, ...
func (rf *RestaurantFactory) CreateRestaurant(index int) *models.Restaurant {
	lat := rf.bounds.MinLat + rf.rng.Float64()*(rf.bounds.MaxLat-rf.bounds.MinLat)
	lon := rf.bounds.MinLon + rf.rng.Float64()*(rf.bounds.MaxLon-rf.bounds.MinLon)

	return &models.Restaurant{
		ID:               fmt.Sprintf("rest_%d", index+1),
		Name:             rf.name(index),
		Zone:             rf.fake.RandomStringElement(Zones),
		Contact:          rf.phoneNumber(),
		Location:         rf.fake.RandomStringElement(Locations),
		AvgDailyOrders:   rf.rng.Intn(dailyOrderSpan) + minDailyOrders,
		AvgRevenue:       float64(rf.rng.Intn(revenueSpan) + minRevenue),
		CancellationRate: rf.rng.Float64() * maxCancellation,
		PeakHour:         rf.rng.Intn(peakHourSpan) + firstPeakHour,
		TopItems:         rf.topItems(),
		Coordinates:      models.Coordinates{Lon: lon, Lat: lat},
	}
}

func (rf *RestaurantFactory) name(index int) string {
	if index < len(RetailerNames) {
		return RetailerNames[index]
	}
	return rf.fake.Company().Name()
}

func (rf *RestaurantFactory) phoneNumber() string {
	prefix := phonePrefixes[rf.rng.Intn(len(phonePrefixes))]
	return fmt.Sprintf("+233 %s %07d", prefix, rf.rng.Intn(10_000_000))
}

// topItems samples without replacement so every entry is distinct.
func (rf *RestaurantFactory) topItems() []string {
	perm := rf.rng.Perm(len(Foods))
	items := make([]string, 0, TopItemCount)
	for _, i := range perm[:TopItemCount] {
		items = append(items, Foods[i])
	}
	return items
}
