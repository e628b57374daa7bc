package log

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/statfit/pkg/errors"
)

func TestTestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")

	testErr := fmt.Errorf("test error")
	testLogger.Error("error message", "error", testErr, ErrorCodeKey, ErrorSingularMatrix)

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	// JSON unmarshaling converts numbers to float64
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}

	if !testLogger.ContainsField(ErrorCodeKey, ErrorSingularMatrix) {
		t.Error("Expected error code field not found")
	}
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "KNNRegressor",
		ComponentKey, "knn.regressor",
		NeighborsKey, 5,
	)

	contextLogger.Info("contextual message", OperationKey, OperationFit)

	if !testLogger.ContainsField(ModelNameKey, "KNNRegressor") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "knn.regressor") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

func TestTestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelDebug)

	logger := provider.GetLoggerWithName("loess")
	logger.Info("smoothing started",
		OperationKey, OperationFit,
		SamplesKey, 100,
		SpanKey, 0.5,
	)

	out := buf.String()
	if !strings.Contains(out, `"component":"loess"`) {
		t.Errorf("component name missing from output: %s", out)
	}
	if !strings.Contains(out, `"loess.span":0.5`) {
		t.Errorf("span attribute missing from output: %s", out)
	}
	if !strings.Contains(out, "smoothing started") {
		t.Errorf("message missing from output: %s", out)
	}
}

func TestZerologProviderSetLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelInfo)

	provider.GetLogger().Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug record should be filtered at Info level")
	}

	provider.SetLevel(LevelDebug)
	provider.GetLogger().Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug record should pass after SetLevel(LevelDebug)")
	}
}

func TestZerologLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if logger.Enabled(ctx, LevelInfo) {
		t.Error("Info should be disabled at Warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Error should be enabled at Warn level")
	}
}

func TestZerologStructuredError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	err := errors.NewDimensionError("Predict", 3, 2, 1)
	logger.Error("prediction failed", "error", err)

	out := buf.String()
	if !strings.Contains(out, `"type":"DimensionError"`) {
		t.Errorf("structured error fields missing from output: %s", out)
	}
	if !strings.Contains(out, `"expected":3`) {
		t.Errorf("expected dimension missing from output: %s", out)
	}
}

func TestBridgeWarnings(t *testing.T) {
	provider, _ := NewTestLoggerProvider(LevelDebug)
	SetProvider(provider)
	BridgeWarnings()
	defer func() {
		errors.SetZerologWarnFunc(nil)
		SetProvider(NewZerologProvider(os.Stderr, LevelInfo))
	}()

	errors.Warn(errors.NewUndefinedMetricWarning("MAPE", "zero values in y_true", 0))

	if !provider.logger.ContainsMessage("ill-defined") {
		t.Error("warning message not routed through the logger")
	}
}

func TestProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)
	SetProvider(provider)
	defer SetProvider(NewZerologProvider(os.Stderr, LevelInfo))

	GetLogger().Info("provider test message")
	GetLoggerWithName("test-component").Info("named logger message")

	out := buffer.String()
	if !strings.Contains(out, "provider test message") {
		t.Error("Provider test message not found")
	}
	if !strings.Contains(out, "named logger message") {
		t.Error("Named logger message not found")
	}
	if !strings.Contains(out, "test-component") {
		t.Error("Component name not found in named logger output")
	}
}

func BenchmarkTestLogger(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		testLogger.Info("benchmark message",
			"iteration", i,
			OperationKey, OperationPredict,
			SamplesKey, 1000,
		)
	}
}
