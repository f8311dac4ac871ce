package analytics

import (
	// Go Internal Packages
	"encoding/json"
	"math"

	// Local Packages
	dataset "fraudwatch/dataset"
	errors "fraudwatch/errors"
	utils "fraudwatch/utils"

	// External Packages
	"go.uber.org/zap"
)

const previewRows = 10

const notAvailable = "n/a"

type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type ClassBalance struct {
	Genuine int `json:"genuine"`
	Fraud   int `json:"fraud"`
}

// Coefficient is a correlation value; NaN marshals as null.
type Coefficient float64

func (c Coefficient) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(c)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(c))
}

func (c Coefficient) Valid() bool {
	return !math.IsNaN(float64(c))
}

type Correlation struct {
	Columns []string        `json:"columns"`
	Values  [][]Coefficient `json:"values"`
}

type Dashboard struct {
	TotalTransactions int    `json:"total_transactions"`
	FraudRate         string `json:"fraud_rate"`
	AvgAmount         string `json:"avg_transaction_amount"`

	Locations []string `json:"locations"`
	Selected  []string `json:"selected_locations"`

	FilteredCount int          `json:"filtered_count"`
	Preview       Preview      `json:"preview"`
	ClassBalance  ClassBalance `json:"class_balance"`
	Correlation   *Correlation `json:"correlation"`

	// Notice carries an EmptyAggregateWarning when the correlation step had nothing to compute.
	Notice  error  `json:"-"`
	Warning string `json:"warning,omitempty"`
}

type Service struct {
	Logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{Logger: logger}
}

// Locations lists the distinct customer locations of the table in first-seen order.
func (s *Service) Locations(table *dataset.Table) []string {
	return table.Distinct(dataset.ColCustomerLocation)
}

// Build computes every dashboard figure. Summary figures cover the full
// table; preview, class balance and correlation cover the rows whose location
// is in selected. A nil selection selects every location; an empty one
// selects nothing.
func (s *Service) Build(table *dataset.Table, selected []string) (*Dashboard, error) {
	if table == nil {
		return nil, errors.E(errors.ResourceLoad, "data not available for dashboard", nil)
	}

	d := &Dashboard{
		TotalTransactions: table.Len(),
		FraudRate:         FraudRate(table),
		AvgAmount:         AvgAmount(table),
		Locations:         s.Locations(table),
	}

	d.Selected = selected
	if d.Selected == nil {
		d.Selected = d.Locations
	}
	filtered := table.Filter(dataset.ColCustomerLocation, d.Selected)
	d.FilteredCount = filtered.Len()

	head := filtered.Head(previewRows)
	d.Preview = Preview{Columns: head.Header(), Rows: make([][]string, head.Len())}
	for i := range d.Preview.Rows {
		d.Preview.Rows[i] = head.Row(i)
	}

	d.ClassBalance = CountClasses(filtered)

	corr, err := Correlate(filtered)
	if err != nil {
		if !errors.Is(err, errors.EmptyAggregate) {
			return nil, err
		}
		d.Notice = err
		d.Warning = err.Error()
	}
	d.Correlation = corr

	s.Logger.Debug("dashboard built",
		zap.Int("rows", d.TotalTransactions), zap.Int("filtered", d.FilteredCount),
		zap.Strings("locations", d.Selected))
	return d, nil
}

// FraudRate is 100 * mean(is_fraud) with two decimals.
func FraudRate(table *dataset.Table) string {
	if table.Len() == 0 {
		return notAvailable
	}
	counts := CountClasses(table)
	return utils.FormatFixed2(100 * float64(counts.Fraud) / float64(table.Len()))
}

// AvgAmount is the mean transaction amount formatted as currency.
func AvgAmount(table *dataset.Table) string {
	mean, ok := table.Mean(dataset.ColTransactionAmt)
	if !ok {
		return notAvailable
	}
	return utils.FormatCurrency(mean)
}

// CountClasses counts fraud and genuine rows.
func CountClasses(table *dataset.Table) ClassBalance {
	var cb ClassBalance
	for i := 0; i < table.Len(); i++ {
		fraud, _ := table.Bool(i, dataset.ColIsFraud)
		if fraud {
			cb.Fraud++
		} else {
			cb.Genuine++
		}
	}
	return cb
}

// Correlate computes the Pearson correlation matrix of the numeric columns,
// using pairwise complete observations. It returns an EmptyAggregateWarning
// when there are no numeric columns or no rows.
func Correlate(table *dataset.Table) (*Correlation, error) {
	columns := table.NumericColumns()
	if len(columns) == 0 {
		return nil, errors.EmptyAggregateWarning("no numeric columns available for heatmap")
	}
	if table.Len() == 0 {
		return nil, errors.EmptyAggregateWarning("no rows match the selected filters")
	}

	series := make([][]float64, len(columns))
	for c, name := range columns {
		series[c] = make([]float64, table.Len())
		for i := range series[c] {
			v, ok := table.Float(i, name)
			if !ok {
				v = math.NaN()
			}
			series[c][i] = v
		}
	}

	values := make([][]Coefficient, len(columns))
	for a := range columns {
		values[a] = make([]Coefficient, len(columns))
		for b := 0; b <= a; b++ {
			r := Coefficient(pearson(series[a], series[b]))
			values[a][b] = r
			values[b][a] = r
		}
	}
	return &Correlation{Columns: columns, Values: values}, nil
}

func pearson(x, y []float64) float64 {
	var n, sx, sy float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		n++
		sx += x[i]
		sy += y[i]
	}
	if n < 2 {
		return math.NaN()
	}
	mx, my := sx/n, sy/n

	var cov, vx, vy float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	r := cov / math.Sqrt(vx*vy)
	return math.Max(-1, math.Min(1, r))
}
