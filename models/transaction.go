package models

import (
	// Go Internal Packages
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	CreditCard PaymentMethod = "Credit Card"
	DebitCard  PaymentMethod = "Debit Card"
	NetBanking PaymentMethod = "Net Banking"
	UPI        PaymentMethod = "UPI"
	Wallet     PaymentMethod = "Wallet"
)

var PaymentMethods = []PaymentMethod{CreditCard, DebitCard, NetBanking, UPI, Wallet}

type TransactionType string

const (
	Online  TransactionType = "Online"
	InStore TransactionType = "In-Store"
)

var TransactionTypes = []TransactionType{Online, InStore}

type BrowserType string

const (
	Chrome       BrowserType = "Chrome"
	Firefox      BrowserType = "Firefox"
	Safari       BrowserType = "Safari"
	Edge         BrowserType = "Edge"
	OtherBrowser BrowserType = "Other"
)

var BrowserTypes = []BrowserType{Chrome, Firefox, Safari, Edge, OtherBrowser}

type Gender string

const (
	Male        Gender = "Male"
	Female      Gender = "Female"
	OtherGender Gender = "Other"
)

var Genders = []Gender{Male, Female, OtherGender}

type DeviceType string

const (
	Mobile  DeviceType = "Mobile"
	Desktop DeviceType = "Desktop"
	Tablet  DeviceType = "Tablet"
)

var DeviceTypes = []DeviceType{Mobile, Desktop, Tablet}

type Location string

const (
	Urban     Location = "Urban"
	SemiUrban Location = "Semi-Urban"
	Rural     Location = "Rural"
)

var Locations = []Location{Urban, SemiUrban, Rural}

type AccountType string

const (
	Savings AccountType = "Savings"
	Current AccountType = "Current"
)

var AccountTypes = []AccountType{Savings, Current}

type MerchantCategory string

const (
	Retail        MerchantCategory = "Retail"
	Electronics   MerchantCategory = "Electronics"
	Travel        MerchantCategory = "Travel"
	Food          MerchantCategory = "Food"
	OtherMerchant MerchantCategory = "Other"
)

var MerchantCategories = []MerchantCategory{Retail, Electronics, Travel, Food, OtherMerchant}

// Yes and No are the human facing answers for is_international.
const (
	Yes = "Yes"
	No  = "No"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum(s, PaymentMethods)
}

func ParseTransactionType(s string) (TransactionType, error) {
	return parseEnum(s, TransactionTypes)
}

func ParseBrowserType(s string) (BrowserType, error) {
	return parseEnum(s, BrowserTypes)
}

func ParseGender(s string) (Gender, error) {
	return parseEnum(s, Genders)
}

func ParseDeviceType(s string) (DeviceType, error) {
	return parseEnum(s, DeviceTypes)
}

func ParseLocation(s string) (Location, error) {
	return parseEnum(s, Locations)
}

func ParseAccountType(s string) (AccountType, error) {
	return parseEnum(s, AccountTypes)
}

func ParseMerchantCategory(s string) (MerchantCategory, error) {
	return parseEnum(s, MerchantCategories)
}

// ParseInternational maps the "Yes"/"No" choice onto the 0/1 encoding the model was fit on.
func ParseInternational(s string) (int, error) {
	switch s {
	case Yes:
		return 1, nil
	case No:
		return 0, nil
	}
	return 0, fmt.Errorf("must be one of %s, %s", Yes, No)
}

// Strings returns the vocabulary of an enum as plain strings, in declaration order.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func parseEnum[T ~string](s string, allowed []T) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("must be one of %s", strings.Join(Strings(allowed), ", "))
}

// TransactionRecord is one validated row of classifier input.
type TransactionRecord struct {
	TransactionAmount float64          `json:"transaction_amount" bson:"transaction_amount"`
	PaymentMethod     PaymentMethod    `json:"payment_method" bson:"payment_method"`
	TransactionType   TransactionType  `json:"transaction_type" bson:"transaction_type"`
	BrowserType       BrowserType      `json:"browser_type" bson:"browser_type"`
	CustomerGender    Gender           `json:"customer_gender" bson:"customer_gender"`
	DeviceType        DeviceType       `json:"device_type" bson:"device_type"`
	CustomerLocation  Location         `json:"customer_location" bson:"customer_location"`
	AccountType       AccountType      `json:"account_type" bson:"account_type"`
	MerchantCategory  MerchantCategory `json:"merchant_category" bson:"merchant_category"`
	IsInternational   int              `json:"is_international" bson:"is_international"`
}

// Categorical returns the categorical features keyed by column name.
func (r TransactionRecord) Categorical() map[string]string {
	return map[string]string{
		"payment_method":    string(r.PaymentMethod),
		"transaction_type":  string(r.TransactionType),
		"browser_type":      string(r.BrowserType),
		"customer_gender":   string(r.CustomerGender),
		"device_type":       string(r.DeviceType),
		"customer_location": string(r.CustomerLocation),
		"account_type":      string(r.AccountType),
		"merchant_category": string(r.MerchantCategory),
	}
}

// Numeric returns the numeric features keyed by column name.
func (r TransactionRecord) Numeric() map[string]float64 {
	return map[string]float64{
		"transaction_amount": r.TransactionAmount,
		"is_international":   float64(r.IsInternational),
	}
}
