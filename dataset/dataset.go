// Package dataset loads small rectangular tables with named columns,
// typically from CSV files. Columns whose every value parses as a
// float64 become numeric; the rest stay categorical. The estimator
// packages never consume a Table directly, callers bridge columns to
// slices and matrices themselves.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/statfit/pkg/errors"
)

// Table is an immutable rectangular table with ordered, named columns.
type Table struct {
	names   []string
	index   map[string]int
	columns []column
	nRows   int
}

type column struct {
	numeric []float64 // nil when the column is categorical
	labels  []string  // nil when the column is numeric
}

type config struct {
	delimiter rune
	header    bool
}

// Option configures CSV parsing.
type Option func(*config)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) Option {
	return func(c *config) {
		c.delimiter = r
	}
}

// WithoutHeader treats the first record as data and names the columns
// c0, c1, and so on.
func WithoutHeader() Option {
	return func(c *config) {
		c.header = false
	}
}

// FromCSV reads a delimited table. The first record supplies the
// column names unless WithoutHeader is given. A column is numeric when
// every one of its values parses as a float64, otherwise it is kept
// categorical with its raw strings.
func FromCSV(r io.Reader, opts ...Option) (*Table, error) {
	const op = "dataset.FromCSV"

	cfg := config{delimiter: ',', header: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.FieldsPerRecord = -1 // ragged rows are reported below, not by the reader
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if len(records) == 0 {
		return nil, errors.NewValueError(op, "empty input")
	}

	var names []string
	rows := records
	if cfg.header {
		for _, name := range records[0] {
			names = append(names, strings.TrimSpace(name))
		}
		rows = records[1:]
	} else {
		for j := range records[0] {
			names = append(names, fmt.Sprintf("c%d", j))
		}
	}

	index := make(map[string]int, len(names))
	for j, name := range names {
		if _, ok := index[name]; ok {
			return nil, errors.NewValueError(op, fmt.Sprintf("duplicate column name %q", name))
		}
		index[name] = j
	}

	nCols := len(names)
	for i, row := range rows {
		if len(row) != nCols {
			return nil, errors.NewValueError(op,
				fmt.Sprintf("row %d has %d fields, expected %d", i+1, len(row), nCols))
		}
	}

	columns := make([]column, nCols)
	for j := 0; j < nCols; j++ {
		values := make([]float64, len(rows))
		numeric := true
		for i, row := range rows {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			if err != nil {
				numeric = false
				break
			}
			values[i] = v
		}
		if numeric {
			columns[j] = column{numeric: values}
			continue
		}
		labels := make([]string, len(rows))
		for i, row := range rows {
			labels[i] = strings.TrimSpace(row[j])
		}
		columns[j] = column{labels: labels}
	}

	return &Table{names: names, index: index, columns: columns, nRows: len(rows)}, nil
}

// Dims returns the number of data rows and columns.
func (t *Table) Dims() (rows, cols int) {
	return t.nRows, len(t.names)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// IsNumeric reports whether the named column parsed as numeric.
func (t *Table) IsNumeric(name string) bool {
	j, ok := t.index[name]
	return ok && t.columns[j].numeric != nil
}

// Column returns a copy of a numeric column.
func (t *Table) Column(name string) ([]float64, error) {
	const op = "dataset.Column"

	col, err := t.lookup(op, name)
	if err != nil {
		return nil, err
	}
	if col.numeric == nil {
		return nil, errors.NewValueError(op, fmt.Sprintf("column %q is not numeric", name))
	}
	out := make([]float64, len(col.numeric))
	copy(out, col.numeric)
	return out, nil
}

// Categorical returns a copy of a categorical column's raw values.
func (t *Table) Categorical(name string) ([]string, error) {
	const op = "dataset.Categorical"

	col, err := t.lookup(op, name)
	if err != nil {
		return nil, err
	}
	if col.labels == nil {
		return nil, errors.NewValueError(op, fmt.Sprintf("column %q is numeric, not categorical", name))
	}
	out := make([]string, len(col.labels))
	copy(out, col.labels)
	return out, nil
}

// Matrix assembles the named numeric columns into a dense matrix, one
// column per name. With no names it takes every numeric column in
// table order.
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	const op = "dataset.Matrix"

	if len(names) == 0 {
		for j, name := range t.names {
			if t.columns[j].numeric != nil {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return nil, errors.NewValueError(op, "table has no numeric columns")
		}
	}

	cols := make([][]float64, len(names))
	for j, name := range names {
		col, err := t.lookup(op, name)
		if err != nil {
			return nil, err
		}
		if col.numeric == nil {
			return nil, errors.NewValueError(op, fmt.Sprintf("column %q is not numeric", name))
		}
		cols[j] = col.numeric
	}

	X := mat.NewDense(t.nRows, len(names), nil)
	for j, col := range cols {
		for i, v := range col {
			X.Set(i, j, v)
		}
	}
	return X, nil
}

// Summary renders per-column statistics: mean, standard deviation,
// minimum and maximum for numeric columns, the distinct value count
// for categorical ones.
func (t *Table) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table: %d rows, %d columns\n", t.nRows, len(t.names))
	fmt.Fprintf(&b, "%-16s %-12s %12s %12s %12s %12s\n",
		"column", "type", "mean", "std", "min", "max")

	for j, name := range t.names {
		col := t.columns[j]
		if col.numeric == nil {
			distinct := make(map[string]struct{}, len(col.labels))
			for _, v := range col.labels {
				distinct[v] = struct{}{}
			}
			fmt.Fprintf(&b, "%-16s %-12s %12s %12s %12s %12s\n",
				name, fmt.Sprintf("cat(%d)", len(distinct)), "-", "-", "-", "-")
			continue
		}

		if len(col.numeric) == 0 {
			fmt.Fprintf(&b, "%-16s %-12s %12s %12s %12s %12s\n",
				name, "numeric", "-", "-", "-", "-")
			continue
		}

		mean := stat.Mean(col.numeric, nil)
		std := stat.StdDev(col.numeric, nil)
		lo, hi := col.numeric[0], col.numeric[0]
		for _, v := range col.numeric[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		fmt.Fprintf(&b, "%-16s %-12s %12.6g %12.6g %12.6g %12.6g\n",
			name, "numeric", mean, std, lo, hi)
	}
	return b.String()
}

func (t *Table) lookup(op, name string) (*column, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewValueError(op, fmt.Sprintf("unknown column %q", name))
	}
	return &t.columns[j], nil
}
