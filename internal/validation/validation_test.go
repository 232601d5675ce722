package validation

import (
	"math/rand"
	"testing"

	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pred(id string, orderVar, revVar int) models.Prediction {
	return models.Prediction{RestaurantID: id, OrderVariance: orderVar, RevenueVariance: revVar}
}

func fixture() ([]models.Prediction, map[string]*models.Restaurant) {
	preds := []models.Prediction{
		pred("rest_1", 2, 20),    // normal
		pred("rest_2", 15, 0),    // unusual on orders
		pred("rest_3", -3, -250), // unusual on revenue
		pred("rest_4", -10, 100), // normal on the boundary
	}
	restaurants := map[string]*models.Restaurant{
		"rest_1": {ID: "rest_1", Name: "Auntie Muni Waakye", Zone: "Greater Accra"},
		"rest_2": {ID: "rest_2", Name: "Papaye Fast Food", Zone: "Greater Accra"},
		"rest_3": {ID: "rest_3", Name: "Chop Bar Kumasi", Zone: "Ashanti"},
		"rest_4": {ID: "rest_4", Name: "Buka Restaurant", Zone: "Volta"},
	}
	return preds, restaurants
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	preds, restaurants := fixture()
	v, err := NewValidator(Thresholds{OrderVariance: 10, RevenueVariance: 100}, restaurants)
	require.NoError(t, err)
	v.SetPredictions(preds)
	return v
}

func TestPartitionClassifiesOnEitherThreshold(t *testing.T) {
	preds, _ := fixture()
	res := Partition(preds, Thresholds{OrderVariance: 10, RevenueVariance: 100})

	assert.Equal(t, []string{"rest_1", "rest_4"}, res.Normal)
	assert.Equal(t, []string{"rest_2", "rest_3"}, res.Unusual)
}

func TestPartitionOrderVarianceAboveThresholdIsUnusual(t *testing.T) {
	for _, revVar := range []int{0, 50, -5000, 5000} {
		res := Partition([]models.Prediction{pred("rest_1", 15, revVar)}, Thresholds{OrderVariance: 10, RevenueVariance: 1e9})
		assert.Equal(t, []string{"rest_1"}, res.Unusual, "revenue variance %d", revVar)
		assert.Empty(t, res.Normal)
	}
}

func TestPartitionExhaustiveDisjointAndMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	preds := make([]models.Prediction, 300)
	for i := range preds {
		preds[i] = pred(string(rune('a'+i%26))+string(rune('A'+i/26)), rng.Intn(41)-20, rng.Intn(801)-400)
	}

	loose := Thresholds{OrderVariance: 15, RevenueVariance: 300}
	tight := Thresholds{OrderVariance: 8, RevenueVariance: 120}
	looseRes := Partition(preds, loose)
	tightRes := Partition(preds, tight)

	for _, res := range []Result{looseRes, tightRes} {
		seen := map[string]int{}
		for _, id := range res.Normal {
			seen[id]++
		}
		for _, id := range res.Unusual {
			seen[id]++
		}
		require.Len(t, seen, len(preds))
		for id, n := range seen {
			assert.Equal(t, 1, n, "id %s", id)
		}
	}

	tightNormal := map[string]bool{}
	for _, id := range tightRes.Normal {
		tightNormal[id] = true
	}
	looseNormal := map[string]bool{}
	for _, id := range looseRes.Normal {
		looseNormal[id] = true
	}
	for id := range tightNormal {
		assert.True(t, looseNormal[id], "%s normal under tight thresholds but not loose", id)
	}
}

func TestValidatorInitialStateIsNormalSet(t *testing.T) {
	v := newValidator(t)
	assert.Equal(t, []string{"rest_1", "rest_4"}, v.Validated())
	assert.False(t, v.IsValidated("rest_2"))
}

func TestValidatorToggle(t *testing.T) {
	v := newValidator(t)

	on, err := v.Toggle("rest_2")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"rest_1", "rest_2", "rest_4"}, v.Validated())

	on, err = v.Toggle("rest_2")
	require.NoError(t, err)
	assert.False(t, on)

	_, err = v.Toggle("rest_1")
	assert.ErrorIs(t, err, ErrNotUnusual)
	_, err = v.Toggle("rest_99")
	assert.ErrorIs(t, err, ErrUnknownRestaurant)
}

func TestValidatorThresholdChangeOverrideSemantics(t *testing.T) {
	v := newValidator(t)
	_, err := v.Toggle("rest_2")
	require.NoError(t, err)

	// rest_2 and rest_3 stay unusual: the override on rest_2 survives.
	require.NoError(t, v.SetThresholds(Thresholds{OrderVariance: 12, RevenueVariance: 100}))
	assert.True(t, v.IsValidated("rest_2"))
	assert.False(t, v.IsValidated("rest_3"))

	// loosening makes rest_2 normal, so it is validated automatically.
	require.NoError(t, v.SetThresholds(Thresholds{OrderVariance: 20, RevenueVariance: 100}))
	assert.True(t, v.IsValidated("rest_2"))

	// tightening again: the earlier override was discarded, it defaults to excluded.
	require.NoError(t, v.SetThresholds(Thresholds{OrderVariance: 10, RevenueVariance: 100}))
	assert.False(t, v.IsValidated("rest_2"))

	// a normal id pushed into unusual is excluded too.
	require.NoError(t, v.SetThresholds(Thresholds{OrderVariance: 1, RevenueVariance: 100}))
	assert.False(t, v.IsValidated("rest_1"))
	assert.Empty(t, v.Validated())
}

func TestValidatorRejectsNegativeThresholds(t *testing.T) {
	v := newValidator(t)
	assert.Error(t, v.SetThresholds(Thresholds{OrderVariance: -1, RevenueVariance: 10}))
	assert.Equal(t, Thresholds{OrderVariance: 10, RevenueVariance: 100}, v.Thresholds())

	_, err := NewValidator(Thresholds{RevenueVariance: -5}, nil)
	assert.Error(t, err)
}

func TestValidatorBulkSelection(t *testing.T) {
	v := newValidator(t)

	v.SelectAll("ashanti")
	assert.Equal(t, []string{"rest_1", "rest_3", "rest_4"}, v.Validated())

	v.SelectAll("")
	assert.Equal(t, []string{"rest_1", "rest_2", "rest_3", "rest_4"}, v.Validated())

	v.OnlyNormal()
	assert.Equal(t, []string{"rest_1", "rest_4"}, v.Validated())
}

func TestValidatorSetPredictionsRecomputes(t *testing.T) {
	v := newValidator(t)
	_, err := v.Toggle("rest_3")
	require.NoError(t, err)

	v.SetPredictions([]models.Prediction{
		pred("rest_1", 40, 0), // now unusual, defaults to excluded
		pred("rest_3", 0, 900),
		pred("rest_4", 0, 0),
	})
	assert.Equal(t, []string{"rest_3", "rest_4"}, v.Validated())

	_, err = v.Toggle("rest_2")
	assert.ErrorIs(t, err, ErrUnknownRestaurant)
}

func TestValidatorStateFiltersUnusual(t *testing.T) {
	v := newValidator(t)
	_, err := v.Toggle("rest_3")
	require.NoError(t, err)

	st := v.State("kumasi")
	assert.Equal(t, []string{"rest_1", "rest_4"}, st.Normal)
	require.Len(t, st.Unusual, 1)
	assert.Equal(t, "rest_3", st.Unusual[0].RestaurantID)
	assert.Equal(t, "Ashanti", st.Unusual[0].Zone)
	assert.True(t, st.Unusual[0].Validated)
	assert.Equal(t, []string{"rest_1", "rest_3", "rest_4"}, st.Validated)

	assert.Len(t, v.State("").Unusual, 2)
}
