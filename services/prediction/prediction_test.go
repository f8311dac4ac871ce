package prediction_test

import (
	// Go Internal Packages
	"context"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	// Local Packages
	classifier "fraudwatch/classifier"
	errors "fraudwatch/errors"
	models "fraudwatch/models"
	"fraudwatch/services/prediction"
	"fraudwatch/services/prediction/mocks"

	// External Packages
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func exampleInput() models.PredictionInput {
	return models.PredictionInput{
		TransactionAmount: 15000,
		PaymentMethod:     "Credit Card",
		TransactionType:   "Online",
		BrowserType:       "Chrome",
		CustomerGender:    "Female",
		DeviceType:        "Mobile",
		CustomerLocation:  "Urban",
		AccountType:       "Savings",
		MerchantCategory:  "Electronics",
		IsInternational:   "No",
	}
}

func exampleRecord() models.TransactionRecord {
	return models.TransactionRecord{
		TransactionAmount: 15000,
		PaymentMethod:     models.CreditCard,
		TransactionType:   models.Online,
		BrowserType:       models.Chrome,
		CustomerGender:    models.Female,
		DeviceType:        models.Mobile,
		CustomerLocation:  models.Urban,
		AccountType:       models.Savings,
		MerchantCategory:  models.Electronics,
		IsInternational:   0,
	}
}

func TestService_Predict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		input     func() models.PredictionInput
		label     int
		proba     [2]float64
		predErr   error
		probaErr  error
		wantCalls bool
		want      models.PredictionResult
		wantKind  errors.Kind
	}{
		{
			name:      "fraud verdict",
			input:     exampleInput,
			label:     1,
			proba:     [2]float64{0.125, 0.875},
			wantCalls: true,
			want:      models.PredictionResult{IsFraud: true, FraudProbability: 0.875},
		},
		{
			name:      "genuine verdict still reports the fraud probability",
			input:     exampleInput,
			label:     0,
			proba:     [2]float64{0.969, 0.031},
			wantCalls: true,
			want:      models.PredictionResult{IsFraud: false, FraudProbability: 0.031},
		},
		{
			name: "zero amount never reaches the classifier",
			input: func() models.PredictionInput {
				in := exampleInput()
				in.TransactionAmount = 0
				return in
			},
			wantKind: errors.Invalid,
		},
		{
			name: "infinite amount never reaches the classifier",
			input: func() models.PredictionInput {
				in := exampleInput()
				in.TransactionAmount = math.Inf(1)
				return in
			},
			wantKind: errors.Invalid,
		},
		{
			name: "unknown category never reaches the classifier",
			input: func() models.PredictionInput {
				in := exampleInput()
				in.MerchantCategory = "Jewellery"
				return in
			},
			wantKind: errors.Invalid,
		},
		{
			name:      "classifier error is an inference error",
			input:     exampleInput,
			predErr:   fmt.Errorf("columns are missing: {'customer_age'}"),
			wantCalls: true,
			wantKind:  errors.Inference,
		},
		{
			name:      "probability error is an inference error",
			input:     exampleInput,
			probaErr:  fmt.Errorf("boom"),
			wantCalls: true,
			wantKind:  errors.Inference,
		},
		{
			name:      "out of range probability",
			input:     exampleInput,
			proba:     [2]float64{-0.5, 1.5},
			wantCalls: true,
			wantKind:  errors.Inference,
		},
		{
			name:      "unexpected label",
			input:     exampleInput,
			label:     2,
			proba:     [2]float64{0.5, 0.5},
			wantCalls: true,
			wantKind:  errors.Inference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := mocks.NewMockClassifier(ctrl)
			if tt.wantCalls {
				clf.EXPECT().Predict(gomock.Any(), exampleRecord()).Return(tt.label, tt.predErr)
				if tt.predErr == nil {
					clf.EXPECT().PredictProba(gomock.Any(), exampleRecord()).Return(tt.proba, tt.probaErr)
				}
			}

			svc := prediction.NewService(zap.NewNop(), clf, nil)
			got, err := svc.Predict(context.Background(), tt.input())

			if tt.wantKind != errors.Other {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_PredictValidationMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := prediction.NewService(zap.NewNop(), mocks.NewMockClassifier(ctrl), nil)
	in := exampleInput()
	in.TransactionAmount = -5

	_, err := svc.Predict(context.Background(), in)
	assert.EqualError(t, err, "validation failed: transaction_amount: must be greater than 0")
}

func TestService_PredictMapsInternational(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := exampleRecord()
	want.IsInternational = 1

	clf := mocks.NewMockClassifier(ctrl)
	clf.EXPECT().Predict(gomock.Any(), want).Return(0, nil)
	clf.EXPECT().PredictProba(gomock.Any(), want).Return([2]float64{0.9, 0.1}, nil)

	in := exampleInput()
	in.IsInternational = "Yes"
	_, err := prediction.NewService(zap.NewNop(), clf, nil).Predict(context.Background(), in)
	assert.NoError(t, err)
}

func TestService_PredictRecordsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cause := fmt.Errorf("model mismatch")
	clf := mocks.NewMockClassifier(ctrl)
	clf.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(0, cause)

	sink := mocks.NewMockFailureSink(ctrl)
	sink.EXPECT().SendFailedPrediction(gomock.Any(), exampleInput(), gomock.Any()).Return(fmt.Errorf("redis down"))

	_, err := prediction.NewService(zap.NewNop(), clf, sink).Predict(context.Background(), exampleInput())
	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, errors.Inference))
}

type panickyClassifier struct{}

func (panickyClassifier) Predict(context.Context, models.TransactionRecord) (int, error) {
	panic("index out of range")
}

func (panickyClassifier) PredictProba(context.Context, models.TransactionRecord) ([2]float64, error) {
	return [2]float64{}, nil
}

func TestService_ScoreRecoversPanics(t *testing.T) {
	svc := prediction.NewService(zap.NewNop(), panickyClassifier{}, nil)
	_, err := svc.Predict(context.Background(), exampleInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.Inference))
	assert.ErrorContains(t, err, "index out of range")
}

func TestService_PredictWithShippedModel(t *testing.T) {
	model, err := classifier.Load(filepath.Join("..", "..", "model", "fraud_pipeline.yml"))
	require.NoError(t, err)

	svc := prediction.NewService(zap.NewNop(), model, nil)
	for _, amount := range []float64{0.01, 100, 15000, 49999.99, 1e7} {
		in := exampleInput()
		in.TransactionAmount = amount

		res, err := svc.Predict(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(res.FraudProbability))
		assert.GreaterOrEqual(t, res.FraudProbability, 0.0)
		assert.LessOrEqual(t, res.FraudProbability, 1.0)
		assert.Equal(t, res.FraudProbability >= model.Threshold, res.IsFraud)
	}
}
