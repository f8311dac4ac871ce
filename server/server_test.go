package server

import (
	// Go Internal Packages
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	// Local Packages
	classifier "fraudwatch/classifier"
	dataset "fraudwatch/dataset"
	errors "fraudwatch/errors"
	resources "fraudwatch/resources"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testArtifact = `
name: amount_only
intercept: -5
numeric:
  - column: transaction_amount
    scale: 1000
    weight: 1
`

const testData = `transaction_amount,customer_location,customer_age,is_fraud
100,Urban,30,0
300,Urban,40,1
200,Rural,50,0
400,Rural,60,0
`

func testResources(t *testing.T) *resources.Resources {
	t.Helper()
	model, err := classifier.Parse([]byte(testArtifact))
	require.NoError(t, err)
	table, err := dataset.ReadCSV(strings.NewReader(testData))
	require.NoError(t, err)
	require.NoError(t, table.Validate())
	return &resources.Resources{Model: model, Dataset: table}
}

func newTestServer(t *testing.T, res *resources.Resources) http.Handler {
	t.Helper()
	s, err := New(zap.NewNop(), res, nil)
	require.NoError(t, err)
	return s.Router()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validForm(amount string) url.Values {
	return url.Values{
		"transaction_amount": {amount},
		"payment_method":     {"Credit Card"},
		"transaction_type":   {"Online"},
		"browser_type":       {"Chrome"},
		"customer_gender":    {"Male"},
		"device_type":        {"Mobile"},
		"customer_location":  {"Urban"},
		"account_type":       {"Savings"},
		"merchant_category":  {"Retail"},
		"is_international":   {"No"},
	}
}

func postForm(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(h, req)
}

func TestRootRedirectsToPredict(t *testing.T) {
	h := newTestServer(t, testResources(t))
	rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/predict", rec.Header().Get("Location"))
}

func TestPredictFormRendersDefaults(t *testing.T) {
	h := newTestServer(t, testResources(t))
	rec := do(h, httptest.NewRequest(http.MethodGet, "/predict", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Fraud Detection System")
	assert.Contains(t, body, `value="100.0"`)
	assert.Contains(t, body, "<option>Credit Card</option>")
	assert.Contains(t, body, "Is International Transaction?")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPredictSubmitVerdicts(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "fraud", amount: "10000", want: "Fraud Detected! (Probability: 99.33%)"},
		{name: "genuine", amount: "100", want: "Genuine Transaction (Fraud Probability: 0.74%)"},
	}

	h := newTestServer(t, testResources(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(h, validForm(tt.amount))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), "<option selected>Credit Card</option>")
		})
	}
}

func TestPredictSubmitRejectsBadInput(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := postForm(h, validForm("lots"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "transaction_amount: must be a number")

	rec = postForm(h, validForm("-5"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "transaction_amount: must be greater than 0")
	assert.NotContains(t, rec.Body.String(), "Fraud Detected!")
}

func TestPredictAPI(t *testing.T) {
	h := newTestServer(t, testResources(t))

	body := `{"transaction_amount": 10000, "payment_method": "UPI", "transaction_type": "In-Store",
		"browser_type": "Safari", "customer_gender": "Female", "device_type": "Desktop",
		"customer_location": "Rural", "account_type": "Current", "merchant_category": "Travel",
		"is_international": "Yes"}`
	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		IsFraud          bool    `json:"is_fraud"`
		FraudProbability float64 `json:"fraud_probability"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsFraud)
	assert.InDelta(t, 0.9933, got.FraudProbability, 1e-4)
}

func TestPredictAPIValidationFields(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{"transaction_amount": 10, "payment_method": "Cash"}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, errors.Invalid.String(), got.Kind)
	assert.Contains(t, got.Fields["payment_method"], "must be one of")
	assert.Equal(t, "cannot be empty", got.Fields["browser_type"])

	rec = do(h, httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyticsView(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := do(h, httptest.NewRequest(http.MethodGet, "/analytics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Summary Statistics")
	assert.Contains(t, body, "25.00")
	assert.Contains(t, body, "$250.00")
	assert.Contains(t, body, "Correlation Heatmap")
}

func TestAnalyticsAPIFiltersByLocation(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/analytics?location=Rural", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Total     int      `json:"total_transactions"`
		Locations []string `json:"locations"`
		Selected  []string `json:"selected_locations"`
		Filtered  int      `json:"filtered_count"`
		Balance   struct {
			Genuine int `json:"genuine"`
			Fraud   int `json:"fraud"`
		} `json:"class_balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, []string{"Urban", "Rural"}, got.Locations)
	assert.Equal(t, []string{"Rural"}, got.Selected)
	assert.Equal(t, 2, got.Filtered)
	assert.Equal(t, 2, got.Balance.Genuine)
	assert.Zero(t, got.Balance.Fraud)
}

func TestDegradedResources(t *testing.T) {
	res := testResources(t)
	res.Model = nil
	res.ModelErr = errors.ResourceLoadErr("model", "model/missing.yml", errors.New("no such file"))
	h := newTestServer(t, res)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/predict", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not load model from model/missing.yml")

	rec = do(h, httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/analytics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	res = testResources(t)
	res.Dataset = nil
	res.DatasetErr = errors.ResourceLoadErr("dataset", "data/missing.csv", errors.New("no such file"))
	h = newTestServer(t, res)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/analytics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not load dataset from data/missing.csv")

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = postForm(h, validForm("100"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthReportsEachResource(t *testing.T) {
	res := testResources(t)
	res.Dataset = nil
	res.DatasetErr = errors.ResourceLoadErr("dataset", "d.csv", errors.New("boom"))
	h := newTestServer(t, res)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := do(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["model"])
	assert.Equal(t, "could not load dataset from d.csv: boom", got["dataset"])
}

func TestAnalyticsEmptySelectionSelectsNothing(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/analytics?filter=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Total    int      `json:"total_transactions"`
		Selected []string `json:"selected_locations"`
		Filtered int      `json:"filtered_count"`
		Warning  string   `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Total)
	assert.Empty(t, got.Selected)
	assert.Zero(t, got.Filtered)
	assert.Equal(t, "no rows match the selected filters", got.Warning)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/analytics?filter=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no rows match the selected filters")
	assert.NotContains(t, rec.Body.String(), "Correlation Heatmap")
	assert.Contains(t, rec.Body.String(), `name="filter"`)
}

func TestAnalyticsRejectsUnknownLocation(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/analytics?location=Metro", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, errors.Invalid.String(), got.Kind)
	assert.Equal(t, "must be one of Urban, Semi-Urban, Rural", got.Fields["location"])

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/analytics?location=", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "cannot be empty", got.Fields["location"])
}

func TestPredictSubmitRejectsInfiniteAmount(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := postForm(h, validForm("Inf"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "transaction_amount: must be a finite number")
	assert.NotContains(t, rec.Body.String(), "prediction failed")
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	h := newTestServer(t, testResources(t))

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, errors.NotFound.String(), got.Kind)
	assert.Equal(t, "no route for GET /api/v1/nope", got.Error)
}

func TestPanickingHandlerIsInternalError(t *testing.T) {
	s, err := New(zap.NewNop(), testResources(t), nil)
	require.NoError(t, err)

	h := s.recoverPanics(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := do(h, httptest.NewRequest(http.MethodGet, "/predict", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, errors.Internal.String(), got.Kind)
	assert.Equal(t, "internal server error", got.Error)
}
