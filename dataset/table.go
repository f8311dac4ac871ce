// Package dataset holds the reference transactions table in memory.
package dataset

import (
	// Go Internal Packages
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	// Local Packages
	utils "fraudwatch/utils"
)

// Required columns every reference dataset must carry.
const (
	ColIsFraud          = "is_fraud"
	ColTransactionAmt   = "transaction_amount"
	ColCustomerLocation = "customer_location"
)

type Kind uint8

const (
	Text Kind = iota
	Numeric
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	}
	return "text"
}

type Column struct {
	Name string
	Kind Kind
	// Integer is set for numeric columns whose every value is integral.
	Integer bool
}

// Table is an immutable, column ordered table. Derived tables (Filter, Head)
// share cell storage with their parent.
type Table struct {
	columns []Column
	index   map[string]int
	rows    [][]string
}

// LoadCSV reads the CSV file at path.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads a headed CSV and infers a kind per column.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		rows = append(rows, record)
	}

	return New(header, rows)
}

// New builds a table from a header and string cells.
func New(header []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(header))
		}
	}
	index := make(map[string]int, len(header))
	columns := make([]Column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
		columns[i] = inferColumn(name, i, rows)
	}
	return &Table{columns: columns, index: index, rows: rows}, nil
}

func inferColumn(name string, idx int, rows [][]string) Column {
	numeric, boolean, integer := true, true, true
	for _, row := range rows {
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		if numeric {
			f, ok := utils.ParseNumber(cell)
			if !ok {
				numeric = false
			} else if f != math.Trunc(f) {
				integer = false
			}
		}
		if boolean {
			lower := strings.ToLower(cell)
			boolean = lower == "true" || lower == "false"
		}
		if !numeric && !boolean {
			break
		}
	}
	switch {
	case numeric:
		return Column{Name: name, Kind: Numeric, Integer: integer}
	case boolean:
		return Column{Name: name, Kind: Boolean}
	}
	return Column{Name: name, Kind: Text}
}

// Validate checks the columns the analytics views depend on.
func (t *Table) Validate() error {
	for _, name := range []string{ColIsFraud, ColTransactionAmt, ColCustomerLocation} {
		if _, ok := t.index[name]; !ok {
			return fmt.Errorf("missing required column %q", name)
		}
	}
	if c, _ := t.Column(ColTransactionAmt); c.Kind != Numeric {
		return fmt.Errorf("column %q must be numeric", ColTransactionAmt)
	}
	for i := range t.rows {
		if _, ok := t.Bool(i, ColIsFraud); !ok {
			return fmt.Errorf("row %d: %q value %q is not a boolean", i+1, ColIsFraud, t.rows[i][t.index[ColIsFraud]])
		}
	}
	return nil
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Columns() []Column {
	return t.columns
}

func (t *Table) Header() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Row returns the raw cells of row i in column order.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Cell returns the raw value at row i, column name.
func (t *Table) Cell(i int, name string) string {
	c, ok := t.index[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.rows[i][c])
}

// Float returns the numeric value at row i; ok is false for missing or non numeric cells.
func (t *Table) Float(i int, name string) (float64, bool) {
	cell := t.Cell(i, name)
	if cell == "" {
		return 0, false
	}
	if b, ok := t.columnBool(name, cell); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return utils.ParseNumber(cell)
}

func (t *Table) columnBool(name, cell string) (bool, bool) {
	if c, _ := t.Column(name); c.Kind != Boolean {
		return false, false
	}
	b, err := strconv.ParseBool(cell)
	return b, err == nil
}

// Bool reads a 0/1 or true/false cell.
func (t *Table) Bool(i int, name string) (bool, bool) {
	return utils.ParseBool(t.Cell(i, name))
}

// Value returns the typed value at row i: nil, int64, float64, bool or string.
func (t *Table) Value(i, col int) any {
	cell := strings.TrimSpace(t.rows[i][col])
	if cell == "" {
		return nil
	}
	c := t.columns[col]
	switch c.Kind {
	case Numeric:
		f, _ := utils.ParseNumber(cell)
		if c.Integer {
			return int64(f)
		}
		return f
	case Boolean:
		b, _ := strconv.ParseBool(cell)
		return b
	}
	return t.rows[i][col]
}

// Distinct lists the non-empty values of a column in first-seen order.
func (t *Table) Distinct(name string) []string {
	seen := map[string]bool{}
	var out []string
	for i := range t.rows {
		v := t.Cell(i, name)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Filter keeps the rows whose value in column name is in keep.
func (t *Table) Filter(name string, keep []string) *Table {
	allowed := make(map[string]bool, len(keep))
	for _, k := range keep {
		allowed[k] = true
	}
	rows := make([][]string, 0, len(t.rows))
	for i, row := range t.rows {
		if allowed[t.Cell(i, name)] {
			rows = append(rows, row)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return &Table{columns: t.columns, index: t.index, rows: t.rows[:n]}
}

// Mean averages the present numeric values of a column; ok is false when there are none.
func (t *Table) Mean(name string) (float64, bool) {
	var sum float64
	var n int
	for i := range t.rows {
		v, ok := t.Float(i, name)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// NumericColumns returns the names of numeric typed columns. Boolean columns are excluded.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.columns {
		if c.Kind == Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}
