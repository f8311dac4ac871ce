package prediction

import (
	// Go Internal Packages
	"context"
	"fmt"
	"math"

	// Local Packages
	errors "fraudwatch/errors"
	models "fraudwatch/models"
	validator "fraudwatch/validator"

	// External Packages
	"go.uber.org/zap"
)

// Classifier is the two method capability of a pre-trained model.
//
//go:generate mockgen -destination=mocks/mock_prediction.go -package=mocks -source=prediction.go
type Classifier interface {
	Predict(ctx context.Context, rec models.TransactionRecord) (int, error)
	PredictProba(ctx context.Context, rec models.TransactionRecord) ([2]float64, error)
}

// FailureSink receives inputs whose inference failed, for later inspection.
type FailureSink interface {
	SendFailedPrediction(ctx context.Context, in models.PredictionInput, cause error) error
}

type Service struct {
	Logger     *zap.Logger
	Classifier Classifier
	Validator  *validator.Validator
	Failures   FailureSink
}

func NewService(logger *zap.Logger, classifier Classifier, failures FailureSink) *Service {
	return &Service{Logger: logger, Classifier: classifier, Validator: validator.New(), Failures: failures}
}

// Predict validates in, scores it and maps the model output to a verdict.
// It returns a validation error before the classifier is ever called, and an
// inference error when the classifier fails.
func (s *Service) Predict(ctx context.Context, in models.PredictionInput) (models.PredictionResult, error) {
	rec, err := s.Record(in)
	if err != nil {
		s.Logger.Info("prediction input rejected", zap.Error(err))
		return models.PredictionResult{}, err
	}

	res, err := s.Score(ctx, rec)
	if err != nil {
		s.Logger.Error("prediction failed", zap.Error(err))
		if s.Failures != nil {
			if sendErr := s.Failures.SendFailedPrediction(ctx, in, err); sendErr != nil {
				s.Logger.Warn("cannot record failed prediction", zap.Error(sendErr))
			}
		}
		return models.PredictionResult{}, err
	}

	s.Logger.Debug("prediction served",
		zap.Bool("is_fraud", res.IsFraud), zap.Float64("fraud_probability", res.FraudProbability))
	return res, nil
}

// Record validates in and builds the classifier row from it.
func (s *Service) Record(in models.PredictionInput) (models.TransactionRecord, error) {
	if err := s.Validator.Validate(in); err != nil {
		return models.TransactionRecord{}, errors.ValidationFailedErr(err)
	}

	// The enum parses cannot fail after validation.
	rec := models.TransactionRecord{TransactionAmount: in.TransactionAmount}
	rec.PaymentMethod, _ = models.ParsePaymentMethod(in.PaymentMethod)
	rec.TransactionType, _ = models.ParseTransactionType(in.TransactionType)
	rec.BrowserType, _ = models.ParseBrowserType(in.BrowserType)
	rec.CustomerGender, _ = models.ParseGender(in.CustomerGender)
	rec.DeviceType, _ = models.ParseDeviceType(in.DeviceType)
	rec.CustomerLocation, _ = models.ParseLocation(in.CustomerLocation)
	rec.AccountType, _ = models.ParseAccountType(in.AccountType)
	rec.MerchantCategory, _ = models.ParseMerchantCategory(in.MerchantCategory)
	rec.IsInternational, _ = models.ParseInternational(in.IsInternational)
	return rec, nil
}

// Score runs the classifier on a validated record. Errors and panics raised
// by the classifier come back as inference errors.
func (s *Service) Score(ctx context.Context, rec models.TransactionRecord) (res models.PredictionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.InferenceErr(fmt.Errorf("classifier panicked: %v", r))
		}
	}()

	label, err := s.Classifier.Predict(ctx, rec)
	if err != nil {
		return res, errors.InferenceErr(err)
	}
	proba, err := s.Classifier.PredictProba(ctx, rec)
	if err != nil {
		return res, errors.InferenceErr(err)
	}

	if label != 0 && label != 1 {
		return res, errors.InferenceErr(fmt.Errorf("unexpected class label %d", label))
	}
	fraud := proba[1]
	if math.IsNaN(fraud) || fraud < 0 || fraud > 1 {
		return res, errors.InferenceErr(fmt.Errorf("fraud probability %v outside [0, 1]", fraud))
	}

	return models.PredictionResult{IsFraud: label == 1, FraudProbability: fraud}, nil
}
