package metrics

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/statfit/pkg/errors"
)

// Accuracy computes the fraction of labels predicted exactly right.
func Accuracy(yTrue, yPred []string) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label slice")
	}

	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// ErrorRate computes the fraction of labels predicted wrong, 1 - Accuracy.
func ErrorRate(yTrue, yPred []string) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// ConfusionMatrix tallies actual versus predicted label pairs. Rows are
// actual labels, columns are predicted labels. Labels are ordered by first
// appearance in yTrue, then yPred, so the layout is deterministic.
type ConfusionMatrix struct {
	Labels []string
	Counts [][]int

	index map[string]int
}

// NewConfusionMatrix builds a confusion matrix from parallel label slices.
func NewConfusionMatrix(yTrue, yPred []string) (*ConfusionMatrix, error) {
	n := len(yTrue)
	if n == 0 {
		return nil, errors.NewValueError("NewConfusionMatrix", "empty label slice")
	}

	if len(yPred) != n {
		return nil, errors.NewDimensionError("NewConfusionMatrix", n, len(yPred), 0)
	}

	cm := &ConfusionMatrix{index: make(map[string]int)}
	for _, label := range yTrue {
		cm.addLabel(label)
	}
	for _, label := range yPred {
		cm.addLabel(label)
	}

	k := len(cm.Labels)
	cm.Counts = make([][]int, k)
	for i := range cm.Counts {
		cm.Counts[i] = make([]int, k)
	}

	for i := 0; i < n; i++ {
		cm.Counts[cm.index[yTrue[i]]][cm.index[yPred[i]]]++
	}

	return cm, nil
}

func (cm *ConfusionMatrix) addLabel(label string) {
	if _, ok := cm.index[label]; !ok {
		cm.index[label] = len(cm.Labels)
		cm.Labels = append(cm.Labels, label)
	}
}

// At returns the count of samples with the given actual label predicted as
// the given label. Unknown labels yield 0.
func (cm *ConfusionMatrix) At(actual, predicted string) int {
	i, ok := cm.index[actual]
	if !ok {
		return 0
	}
	j, ok := cm.index[predicted]
	if !ok {
		return 0
	}
	return cm.Counts[i][j]
}

// String renders the matrix as an aligned text table with actual labels on
// rows and predicted labels on columns.
func (cm *ConfusionMatrix) String() string {
	width := len("actual\\pred")
	for _, label := range cm.Labels {
		if len(label) > width {
			width = len(label)
		}
	}
	for _, row := range cm.Counts {
		for _, c := range row {
			if w := len(fmt.Sprintf("%d", c)); w > width {
				width = w
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", width, "actual\\pred")
	for _, label := range cm.Labels {
		fmt.Fprintf(&b, "  %*s", width, label)
	}
	b.WriteByte('\n')

	for i, label := range cm.Labels {
		fmt.Fprintf(&b, "%-*s", width, label)
		for j := range cm.Labels {
			fmt.Fprintf(&b, "  %*d", width, cm.Counts[i][j])
		}
		b.WriteByte('\n')
	}

	return b.String()
}
