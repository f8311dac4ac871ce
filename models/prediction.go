package models

import "time"

// PredictionInput is the raw form a user (or a stream producer) submits.
// Enum fields are validated against their vocabularies before a
// TransactionRecord is built from it.
type PredictionInput struct {
	TransactionAmount float64 `json:"transaction_amount" validate:"finite,gt=0"`
	PaymentMethod     string  `json:"payment_method" validate:"required,payment_method"`
	TransactionType   string  `json:"transaction_type" validate:"required,transaction_type"`
	BrowserType       string  `json:"browser_type" validate:"required,browser_type"`
	CustomerGender    string  `json:"customer_gender" validate:"required,customer_gender"`
	DeviceType        string  `json:"device_type" validate:"required,device_type"`
	CustomerLocation  string  `json:"customer_location" validate:"required,customer_location"`
	AccountType       string  `json:"account_type" validate:"required,account_type"`
	MerchantCategory  string  `json:"merchant_category" validate:"required,merchant_category"`
	IsInternational   string  `json:"is_international" validate:"required,oneof=Yes No"`
}

type PredictionResult struct {
	IsFraud          bool    `json:"is_fraud" bson:"is_fraud"`
	FraudProbability float64 `json:"fraud_probability" bson:"fraud_probability"`
}

// ScoredTransaction is what the stream scorer stores per scored record.
type ScoredTransaction struct {
	PredictionID string            `json:"prediction_id" bson:"_id"`
	SourceKey    string            `json:"source_key" bson:"source_key"`
	Record       TransactionRecord `json:"record" bson:"record"`
	Result       PredictionResult  `json:"result" bson:"result"`
	ScoredAt     time.Time         `json:"scored_at" bson:"scored_at"`
}
