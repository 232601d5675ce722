package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A int `json:"a"`
	B int `json:"b"`
}

func TestEncodeCSVSingleRecord(t *testing.T) {
	out, err := EncodeCSV([]pair{{A: 1, B: 2}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"1\",\"2\"", string(out))
}

func TestEncodeCSVValues(t *testing.T) {
	type row struct {
		Name    string   `json:"name"`
		Count   int64    `json:"count"`
		Rate    float64  `json:"rate"`
		Note    *string  `json:"note"`
		Items   []string `json:"items"`
		Skipped string   `json:"-"`
		private string
	}
	out, err := EncodeCSV([]row{
		{Name: `Mama "K" Chop Bar`, Count: 0, Rate: 0.125, Items: []string{"Waakye", "Fufu"}, Skipped: "x", private: "y"},
		{Name: "Buka", Count: 12, Rate: 400},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"name,count,rate,note,items\n"+
			`"Mama ""K"" Chop Bar","0","0.125","","Waakye; Fufu"`+"\n"+
			`"Buka","12","400","",""`,
		string(out))
}

func TestEncodeCSVEmpty(t *testing.T) {
	out, err := EncodeCSV([]pair(nil))
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = EncodeCSV([]int{1})
	assert.Error(t, err)
}

func TestEncodeJSONIndented(t *testing.T) {
	out, err := EncodeJSON([]pair{{A: 1, B: 2}})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"a\": 1,\n    \"b\": 2\n  }\n]", string(out))

	out, err = EncodeJSON([]pair(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestEncodeParquet(t *testing.T) {
	out, err := EncodeParquet([]PredictionRow{
		{RestaurantName: "Buka", Zone: "Volta", PredictedOrders: 20, ExpectedRevenue: 300, PotentialRevenue: 400, RiskLevel: "high", Date: "2025-03-15"},
		{RestaurantName: "Papaye", Zone: "Greater Accra", PredictedOrders: 31, RiskLevel: "low", Date: "2025-03-15"},
	})
	require.NoError(t, err)
	require.Greater(t, len(out), 8)
	assert.Equal(t, "PAR1", string(out[:4]))
	assert.Equal(t, "PAR1", string(out[len(out)-4:]))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
