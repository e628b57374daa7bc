package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "statfit: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "statfit: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 7, 0)

	want := "statfit: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 7"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 10 || dimErr.Got != 7 {
		t.Errorf("DimensionError fields = (%d, %d), want (10, 7)", dimErr.Expected, dimErr.Got)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("KNNRegressor", "Predict")

	want := "statfit: KNNRegressor: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewInvalidParameterError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		param   string
		reason  string
		value   interface{}
		wantMsg string
	}{
		{
			name:    "span out of range",
			op:      "loess.Fit",
			param:   "span",
			reason:  "must be in (0, 1)",
			value:   1.5,
			wantMsg: "statfit: loess.Fit: invalid parameter 'span': must be in (0, 1) (got: 1.5)",
		},
		{
			name:    "non-positive k",
			op:      "KNNRegressor.Fit",
			param:   "k",
			reason:  "must be at least 1",
			value:   0,
			wantMsg: "statfit: KNNRegressor.Fit: invalid parameter 'k': must be at least 1 (got: 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidParameterError(tt.op, tt.param, tt.reason, tt.value)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var paramErr *InvalidParameterError
			if !As(err, &paramErr) {
				t.Error("Error should be castable to *InvalidParameterError")
			}
			if paramErr.Param != tt.param {
				t.Errorf("Param = %v, want %v", paramErr.Param, tt.param)
			}
		})
	}
}

func TestNewSingularMatrixError(t *testing.T) {
	err := NewSingularMatrixError("ols.Fit", 2, 2)

	want := "statfit: ols.Fit: singular matrix (2x2 system)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	if !Is(err, ErrSingularMatrix) {
		t.Error("Expected Is(err, ErrSingularMatrix) to be true")
	}

	var singErr *SingularMatrixError
	if !As(err, &singErr) {
		t.Error("Error should be castable to *SingularMatrixError")
	}
}

func TestNewInsufficientNeighborsError(t *testing.T) {
	err := NewInsufficientNeighborsError("loess.Fit", 1, 2)

	want := "statfit: loess.Fit: window holds 1 points but the local fit requires at least 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var neighErr *InsufficientNeighborsError
	if !As(err, &neighErr) {
		t.Error("Error should be castable to *InsufficientNeighborsError")
	}
	if neighErr.WindowSize != 1 || neighErr.Required != 2 {
		t.Errorf("fields = (%d, %d), want (1, 2)", neighErr.WindowSize, neighErr.Required)
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("metrics.R2Score", "R2 score is undefined when all true values are identical")

	want := "statfit: metrics.R2Score: R2 score is undefined when all true values are identical"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestWrapAndIs(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrap(baseErr, "in KNNRegressor.Fit")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in KNNRegressor.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Predict", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Predict: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}

func TestWarnUsesHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	warn := NewUndefinedMetricWarning("MAPE", "zero values in y_true", 0)
	Warn(warn)

	if captured == nil {
		t.Fatal("Expected warning handler to be invoked")
	}

	var metricWarn *UndefinedMetricWarning
	if !As(captured, &metricWarn) {
		t.Error("Warning should be castable to *UndefinedMetricWarning")
	}
	if metricWarn.Metric != "MAPE" {
		t.Errorf("Metric = %v, want MAPE", metricWarn.Metric)
	}
}
