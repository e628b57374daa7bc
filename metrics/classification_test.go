package metrics

import (
	"math"
	"strings"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []string
		yPred   []string
		want    float64
		wantErr bool
	}{
		{
			name:  "three of four correct",
			yTrue: []string{"cat", "dog", "cat", "bird"},
			yPred: []string{"cat", "cat", "cat", "bird"},
			want:  0.75,
		},
		{
			name:  "all correct",
			yTrue: []string{"a", "b"},
			yPred: []string{"a", "b"},
			want:  1.0,
		},
		{
			name:  "none correct",
			yTrue: []string{"a", "b"},
			yPred: []string{"b", "a"},
			want:  0.0,
		},
		{
			name:    "length mismatch",
			yTrue:   []string{"a", "b"},
			yPred:   []string{"a"},
			wantErr: true,
		},
		{
			name:    "empty",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorRate(t *testing.T) {
	yTrue := []string{"cat", "dog", "cat", "bird"}
	yPred := []string{"cat", "cat", "cat", "bird"}

	got, err := ErrorRate(yTrue, yPred)
	if err != nil {
		t.Fatalf("ErrorRate() unexpected error: %v", err)
	}
	if math.Abs(got-0.25) > 1e-10 {
		t.Errorf("ErrorRate() = %v, want 0.25", got)
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []string{"cat", "dog", "cat", "bird"}
	yPred := []string{"cat", "cat", "cat", "bird"}

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix() unexpected error: %v", err)
	}

	// First-appearance order over yTrue then yPred.
	wantLabels := []string{"cat", "dog", "bird"}
	if len(cm.Labels) != len(wantLabels) {
		t.Fatalf("Labels = %v, want %v", cm.Labels, wantLabels)
	}
	for i, label := range wantLabels {
		if cm.Labels[i] != label {
			t.Errorf("Labels[%d] = %v, want %v", i, cm.Labels[i], label)
		}
	}

	checks := []struct {
		actual    string
		predicted string
		want      int
	}{
		{"cat", "cat", 2},
		{"dog", "cat", 1},
		{"bird", "bird", 1},
		{"cat", "dog", 0},
		{"unknown", "cat", 0},
	}
	for _, c := range checks {
		if got := cm.At(c.actual, c.predicted); got != c.want {
			t.Errorf("At(%q, %q) = %d, want %d", c.actual, c.predicted, got, c.want)
		}
	}

	out := cm.String()
	if !strings.Contains(out, "actual\\pred") {
		t.Errorf("String() missing header: %q", out)
	}
	if !strings.Contains(out, "cat") || !strings.Contains(out, "bird") {
		t.Errorf("String() missing labels: %q", out)
	}
}

func TestConfusionMatrix_Errors(t *testing.T) {
	if _, err := NewConfusionMatrix(nil, nil); err == nil {
		t.Error("empty input should error")
	}
	if _, err := NewConfusionMatrix([]string{"a"}, []string{"a", "b"}); err == nil {
		t.Error("length mismatch should error")
	}
}
