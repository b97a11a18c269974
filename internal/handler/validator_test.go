package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ItemID(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		itemID  string
		wantErr bool
	}{
		{"plain id", "sword_lvl1", false},
		{"dotted product-like id", "com.example.coins", false},
		{"exactly max length", strings.Repeat("a", 200), false},

		{"empty", "", true},
		{"over max length", strings.Repeat("a", 201), true},
		{"message separator", "sword#SOOM#1", true},
		{"space", "red hat", true},
		{"newline", "hat\n", true},
		{"null byte", "hat\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(GoodRequest{GoodID: tt.itemID})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Amount(t *testing.T) {
	InitValidator()
	v := GetValidator()

	for _, amount := range []int{1, 1000000} {
		assert.NoError(t, v.ValidateStruct(AmountRequest{ItemID: "coin", Amount: amount}))
	}
	for _, amount := range []int{0, -3, 1000001} {
		assert.Error(t, v.ValidateStruct(AmountRequest{ItemID: "coin", Amount: amount}))
	}
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()

	err := GetValidator().ValidateStruct(MarketCallbackRequest{Outcome: "maybe"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["product_id"])
	assert.Equal(t, "Invalid outcome", fields["outcome"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, "Invalid request format", FormatValidationError(assert.AnError)["error"])
}
