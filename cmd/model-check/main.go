package main

import (
	// Go Internal Packages
	"context"
	"fmt"
	"log"

	// Local Packages
	classifier "fraudwatch/classifier"
	helpers "fraudwatch/helpers"
	models "fraudwatch/models"
	prediction "fraudwatch/services/prediction"
	utils "fraudwatch/utils"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
)

// sample is the reference transaction the artifact is smoke-tested against.
var sample = models.PredictionInput{
	TransactionAmount: 5000,
	PaymentMethod:     string(models.CreditCard),
	TransactionType:   string(models.Online),
	BrowserType:       string(models.Chrome),
	CustomerGender:    string(models.Male),
	DeviceType:        string(models.Mobile),
	CustomerLocation:  string(models.Urban),
	AccountType:       string(models.Savings),
	MerchantCategory:  string(models.Retail),
	IsInternational:   models.No,
}

func main() {
	modelPath := kingpin.Flag("model", "Path to the model artifact").Short('m').Default("model/fraud_pipeline.yml").String()
	logLevel := kingpin.Flag("log-level", "Log level").Default("warn").String()
	kingpin.Parse()

	logger, err := helpers.NewLogger("model-check", *logLevel)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	model, err := classifier.Load(*modelPath)
	if err != nil {
		log.Fatalf("cannot load model: %v", err)
	}
	fmt.Printf("Model: %s %s\n", model.Name, model.Version)
	fmt.Printf("Features: %s\n", utils.JoinStrings(model.Columns()))

	fmt.Println("Sample transaction:")
	helpers.PrintStruct(sample)

	res, err := prediction.NewService(logger, model, nil).Predict(context.Background(), sample)
	if err != nil {
		log.Fatalf("cannot score sample: %v", err)
	}

	verdict := "Not Fraud"
	if res.IsFraud {
		verdict = "Fraud"
	}
	fmt.Printf("Prediction: %s\n", verdict)
	fmt.Printf("Probability of Fraud: %s\n", utils.FormatPercent(res.FraudProbability))
}
