package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "150", "82.5", "-15.3333", "1250.00"} {
		d := decimal.RequireFromString(s)
		assert.True(t, fromNumeric(toNumeric(d)).Equal(d), s)
	}
	assert.True(t, fromNumeric(pgtype.Numeric{}).IsZero())
}

func TestAllocationRows(t *testing.T) {
	thali := &models.MenuItem{ID: 7, Name: "Veg Thali", Price: decimal.NewFromInt(100)}
	results := []models.OrderAllocation{
		{
			Order: models.Order{ID: "A1"},
			Allocations: []models.Allocation{
				{ItemName: "veg thali", MatchedItem: thali, Confidence: models.ConfidenceHigh, MatchScore: 1,
					AllocatedPrice: decimal.NewFromInt(100), Method: models.MethodMenuPrice},
				{ItemName: "Unknown Snack", Confidence: models.ConfidenceEstimated,
					AllocatedPrice: decimal.NewFromInt(150), Method: models.MethodProportional},
			},
		},
		{Order: models.Order{ID: "missing"}, Allocations: []models.Allocation{{ItemName: "x"}}},
	}

	rows := allocationRows(results, map[string]int64{"A1": 42})
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row, len(allocationColumns))
		assert.Equal(t, int64(42), row[0])
	}

	id, ok := rows[0][2].(*int64)
	require.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)
	assert.Equal(t, "HIGH", rows[0][6])
	assert.Equal(t, "MENU_PRICE", rows[0][8])

	assert.Nil(t, rows[1][2].(*int64))
	assert.Nil(t, rows[1][5])
	assert.Equal(t, "PROPORTIONAL", rows[1][8])
	assert.True(t, fromNumeric(rows[1][4].(pgtype.Numeric)).Equal(decimal.NewFromInt(150)))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "Card", *nullable("Card"))
}
