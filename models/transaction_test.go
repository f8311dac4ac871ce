package models

import (
	// Go Internal Packages
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	pm, err := ParsePaymentMethod("Net Banking")
	require.NoError(t, err)
	assert.Equal(t, NetBanking, pm)

	_, err = ParsePaymentMethod("Cash")
	require.EqualError(t, err, "must be one of Credit Card, Debit Card, Net Banking, UPI, Wallet")

	loc, err := ParseLocation("Semi-Urban")
	require.NoError(t, err)
	assert.Equal(t, SemiUrban, loc)

	_, err = ParseLocation("urban")
	assert.Error(t, err)

	_, err = ParseTransactionType("In-Store")
	assert.NoError(t, err)
	_, err = ParseMerchantCategory("Other")
	assert.NoError(t, err)
	_, err = ParseBrowserType("Opera")
	assert.Error(t, err)
}

func TestParseInternational(t *testing.T) {
	v, err := ParseInternational("Yes")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = ParseInternational("No")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = ParseInternational("yes")
	assert.Error(t, err)
}

func TestRecordFeatures(t *testing.T) {
	rec := TransactionRecord{
		TransactionAmount: 15000,
		PaymentMethod:     CreditCard,
		CustomerLocation:  Urban,
		IsInternational:   1,
	}
	assert.Equal(t, "Credit Card", rec.Categorical()["payment_method"])
	assert.Equal(t, "Urban", rec.Categorical()["customer_location"])
	assert.Equal(t, 15000.0, rec.Numeric()["transaction_amount"])
	assert.Equal(t, 1.0, rec.Numeric()["is_international"])
	assert.Len(t, rec.Categorical(), 8)
}
