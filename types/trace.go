package types

// Trace of a solver run, one entry per executed update step
type Trace struct {
	steps     []int
	states    []string
	oldValues []float64
	newValues []float64
}

func NewTrace() *Trace {
	return &Trace{
		steps:     make([]int, 0),
		states:    make([]string, 0),
		oldValues: make([]float64, 0),
		newValues: make([]float64, 0),
	}
}

// Append records that state moved from oldVal to newVal at the given step.
// Synchronous sweeps append one entry per updated state with the same step
func (t *Trace) Append(step int, state string, oldVal, newVal float64) {
	t.steps = append(t.steps, step)
	t.states = append(t.states, state)
	t.oldValues = append(t.oldValues, oldVal)
	t.newValues = append(t.newValues, newVal)
}

func (t *Trace) Len() int {
	return len(t.steps)
}

func (t *Trace) Get(i int) (int, string, float64, float64, bool) {
	if i < 0 || i >= len(t.steps) {
		return 0, "", 0, 0, false
	}
	return t.steps[i], t.states[i], t.oldValues[i], t.newValues[i], true
}

func (t *Trace) Last() (int, string, float64, float64, bool) {
	return t.Get(len(t.steps) - 1)
}

// Residuals returns, for every step, the largest absolute value change in that step
func (t *Trace) Residuals() []float64 {
	out := make([]float64, 0)
	lastStep := -1
	for i, step := range t.steps {
		diff := t.newValues[i] - t.oldValues[i]
		if diff < 0 {
			diff = -diff
		}
		if step != lastStep {
			out = append(out, diff)
			lastStep = step
			continue
		}
		if diff > out[len(out)-1] {
			out[len(out)-1] = diff
		}
	}
	return out
}
