package notification

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodpredict/internal/models"
)

const (
	PlaceholderRestaurantName  = "restaurantName"
	PlaceholderLostRevenue     = "lostRevenue"
	PlaceholderPeakHour        = "peakHour"
	PlaceholderCancelledOrders = "cancelledOrders"
	PlaceholderStockOutItems   = "stockOutItems"
	PlaceholderPredictedOrders = "predictedOrders"
)

var (
	ErrMissingPlaceholder = errors.New("template is missing a required placeholder")
	ErrUnknownPlaceholder = errors.New("template uses an unknown placeholder")
	ErrNoPrediction       = errors.New("no prediction for restaurant")
)

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

var requiredPlaceholders = []string{PlaceholderRestaurantName, PlaceholderPredictedOrders}

var knownPlaceholders = map[string]bool{
	PlaceholderRestaurantName:  true,
	PlaceholderLostRevenue:     true,
	PlaceholderPeakHour:        true,
	PlaceholderCancelledOrders: true,
	PlaceholderStockOutItems:   true,
	PlaceholderPredictedOrders: true,
}

// ValidateTemplate rejects templates that omit a required placeholder or
// reference one that cannot be resolved.
func ValidateTemplate(tmpl string) error {
	used := map[string]bool{}
	var unknown []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		name := m[1]
		if !knownPlaceholders[name] && !used[name] {
			unknown = append(unknown, name)
		}
		used[name] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, strings.Join(unknown, "}, {"))
	}
	for _, name := range requiredPlaceholders {
		if !used[name] {
			return fmt.Errorf("%w: {%s}", ErrMissingPlaceholder, name)
		}
	}
	return nil
}

// Values resolves every placeholder for one restaurant.
func Values(r *models.Restaurant, p *models.Prediction) map[string]string {
	stockOut := r.TopItems
	if len(stockOut) > 2 {
		stockOut = stockOut[:2]
	}
	return map[string]string{
		PlaceholderRestaurantName:  r.Name,
		PlaceholderLostRevenue:     strconv.Itoa(p.PotentialLoss()),
		PlaceholderPeakHour:        fmt.Sprintf("%02d:00", r.PeakHour),
		PlaceholderCancelledOrders: strconv.Itoa(int(math.Floor(float64(r.AvgDailyOrders) * r.CancellationRate))),
		PlaceholderStockOutItems:   strings.Join(stockOut, " and "),
		PlaceholderPredictedOrders: strconv.Itoa(p.PredictedOrders),
	}
}

// Render validates tmpl and substitutes every placeholder in a single pass, so
// values containing braces are never expanded again.
func Render(tmpl string, r *models.Restaurant, p *models.Prediction) (string, error) {
	if err := ValidateTemplate(tmpl); err != nil {
		return "", err
	}
	if p == nil {
		return "", fmt.Errorf("%w: %s", ErrNoPrediction, r.ID)
	}
	return render(tmpl, Values(r, p)), nil
}

func render(tmpl string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		return values[m[1:len(m)-1]]
	})
}
