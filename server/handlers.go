package server

import (
	// Go Internal Packages
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	// Local Packages
	errors "fraudwatch/errors"
	models "fraudwatch/models"
	analytics "fraudwatch/services/analytics"
)

const defaultAmount = "100.0"

// filterParam marks a submitted analytics filter form.
const filterParam = "filter"

var formOptions = map[string][]string{
	"payment_method":    models.Strings(models.PaymentMethods),
	"transaction_type":  models.Strings(models.TransactionTypes),
	"browser_type":      models.Strings(models.BrowserTypes),
	"customer_gender":   models.Strings(models.Genders),
	"device_type":       models.Strings(models.DeviceTypes),
	"customer_location": models.Strings(models.Locations),
	"account_type":      models.Strings(models.AccountTypes),
	"merchant_category": models.Strings(models.MerchantCategories),
	"is_international":  {models.No, models.Yes},
}

type predictPage struct {
	Layout
	Options       map[string][]string
	Input         models.PredictionInput
	Amount        string
	Result        *models.PredictionResult
	Error         string
	ResourceError string
}

type analyticsPage struct {
	Layout
	Dashboard     *analytics.Dashboard
	ResourceError string
}

func (s *Server) newPredictPage() predictPage {
	p := predictPage{
		Layout:  s.layout("Fraud Detection", "predict"),
		Options: formOptions,
		Amount:  defaultAmount,
	}
	if s.Predictor == nil {
		p.ResourceError = s.modelErr().Error()
	}
	return p
}

func (s *Server) modelErr() error {
	if s.Resources.ModelErr != nil {
		return s.Resources.ModelErr
	}
	return errors.E(errors.ResourceLoad, "model not available", nil)
}

func (s *Server) datasetErr() error {
	if s.Resources.DatasetErr != nil {
		return s.Resources.DatasetErr
	}
	return errors.E(errors.ResourceLoad, "data not available for dashboard", nil)
}

func (s *Server) predictForm(w http.ResponseWriter, _ *http.Request) {
	page := s.newPredictPage()
	status := http.StatusOK
	if page.ResourceError != "" {
		status = http.StatusServiceUnavailable
	}
	s.render(w, status, s.predictTmpl, page)
}

func (s *Server) predictSubmit(w http.ResponseWriter, r *http.Request) {
	page := s.newPredictPage()
	if s.Predictor == nil {
		s.render(w, http.StatusServiceUnavailable, s.predictTmpl, page)
		return
	}
	if err := r.ParseForm(); err != nil {
		page.Error = errors.InvalidBodyErr(err).Error()
		s.render(w, http.StatusBadRequest, s.predictTmpl, page)
		return
	}

	page.Amount = r.PostForm.Get("transaction_amount")
	page.Input = models.PredictionInput{
		PaymentMethod:    r.PostForm.Get("payment_method"),
		TransactionType:  r.PostForm.Get("transaction_type"),
		BrowserType:      r.PostForm.Get("browser_type"),
		CustomerGender:   r.PostForm.Get("customer_gender"),
		DeviceType:       r.PostForm.Get("device_type"),
		CustomerLocation: r.PostForm.Get("customer_location"),
		AccountType:      r.PostForm.Get("account_type"),
		MerchantCategory: r.PostForm.Get("merchant_category"),
		IsInternational:  r.PostForm.Get("is_international"),
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(page.Amount), 64)
	if err != nil {
		ve := errors.ValidationErrs()
		ve.Add("transaction_amount", "must be a number")
		page.Error = errors.ValidationFailedErr(ve.Err()).Error()
		s.render(w, http.StatusUnprocessableEntity, s.predictTmpl, page)
		return
	}
	page.Input.TransactionAmount = amount

	res, err := s.Predictor.Predict(r.Context(), page.Input)
	if err != nil {
		page.Error = err.Error()
		s.render(w, statusFor(err), s.predictTmpl, page)
		return
	}
	page.Result = &res
	s.render(w, http.StatusOK, s.predictTmpl, page)
}

func (s *Server) predictAPI(w http.ResponseWriter, r *http.Request) {
	if s.Predictor == nil {
		s.respondError(w, s.modelErr())
		return
	}

	var in models.PredictionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, errors.InvalidBodyErr(err))
		return
	}

	res, err := s.Predictor.Predict(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) dashboard(r *http.Request) (*analytics.Dashboard, error) {
	if s.Resources.Dataset == nil {
		return nil, s.datasetErr()
	}
	selected, err := locationFilter(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return s.Analytics.Build(s.Resources.Dataset, selected)
}

// locationFilter reads the location selection. No location and no filter
// marker means the default of every location; a submitted filter form with
// nothing selected means no location.
func locationFilter(q url.Values) ([]string, error) {
	selected, ok := q["location"]
	if !ok {
		if q.Has(filterParam) {
			return []string{}, nil
		}
		return nil, nil
	}

	ve := errors.ValidationErrs()
	for _, loc := range selected {
		if strings.TrimSpace(loc) == "" {
			return nil, errors.EmptyParamErr("location")
		}
		if _, err := models.ParseLocation(loc); err != nil {
			ve.Add("location", err.Error())
		}
	}
	if err := ve.Err(); err != nil {
		return nil, errors.InvalidParamsErr(err)
	}
	return selected, nil
}

func (s *Server) analyticsView(w http.ResponseWriter, r *http.Request) {
	page := analyticsPage{Layout: s.layout("Fraud Analytics Dashboard", "analytics")}

	d, err := s.dashboard(r)
	if err != nil {
		page.ResourceError = err.Error()
		s.render(w, statusFor(err), s.analyticsTmpl, page)
		return
	}
	page.Dashboard = d
	s.render(w, http.StatusOK, s.analyticsTmpl, page)
}

func (s *Server) analyticsAPI(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}
