package sales

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Quantity
		wantErr bool
	}{
		{"integer", `3`, 3, false},
		{"fraction truncated", `2.7`, 2, false},
		{"numeric string", `"4"`, 4, false},
		{"fractional string", `"5.9"`, 5, false},
		{"null", `null`, 0, false},
		{"garbage", `"abc"`, 0, true},
		{"boolean", `true`, 0, true},
		{"too large", `1e20`, 0, true},
		{"too small", `-1e20`, 0, true},
		{"too large string", `"99999999999"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			err := json.Unmarshal([]byte(tt.input), &q)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestTransactionJSONFieldNames(t *testing.T) {
	tx := Transaction{
		ID:          1,
		ProductID:   101,
		ProductName: "Espresso Shot",
		Category:    "Coffee",
		Qty:         2,
		Date:        "2025-01-20",
		Total:       120,
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"productId":101,"productName":"Espresso Shot","category":"Coffee","qty":2,"date":"2025-01-20","total":120}`,
		string(data))
}

func TestValidateTransaction(t *testing.T) {
	valid := Transaction{
		ID:          1737331200000,
		ProductID:   101,
		ProductName: "Espresso Shot",
		Category:    "Coffee",
		Qty:         2,
		Date:        "2025-01-20",
		Total:       120,
	}
	require.NoError(t, ValidateTransaction(valid))

	tests := []struct {
		name   string
		mutate func(*Transaction)
		field  string
	}{
		{"zero quantity", func(tx *Transaction) { tx.Qty = 0 }, "Qty"},
		{"negative total", func(tx *Transaction) { tx.Total = -1 }, "Total"},
		{"bad date", func(tx *Transaction) { tx.Date = "20/01/2025" }, "Date"},
		{"missing product", func(tx *Transaction) { tx.ProductID = 0 }, "ProductID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := ValidateTransaction(tx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
