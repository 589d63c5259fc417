package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path"

	"github.com/zeu5/mdp-vi/types"
	"github.com/zeu5/mdp-vi/util"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"k8s.io/klog/v2"
)

// NoopComparator discards the datasets
func NoopComparator() types.Comparator {
	return func(_ []string, _ []types.DataSet) error {
		return nil
	}
}

// ResidualAnalyzer returns the largest value change of every step, empty without a trace
func ResidualAnalyzer(r *types.Result) types.DataSet {
	if r.Trace == nil {
		return []float64{}
	}
	return r.Trace.Residuals()
}

// ResidualPlotter draws the residual curves of all experiments in one plot
func ResidualPlotter(plotPath string) types.Comparator {
	return func(names []string, ds []types.DataSet) error {
		p := plot.New()
		p.Title.Text = "Convergence"
		p.X.Label.Text = "Step"
		p.Y.Label.Text = "Max value change"
		for i, name := range names {
			residuals := ds[i].([]float64)
			points := make(plotter.XYs, len(residuals))
			for j, v := range residuals {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				return fmt.Errorf("residuals of %s: %w", name, err)
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(name, line)
		}
		return p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "convergence.png"))
	}
}

// Convergence summarizes a residual curve
type Convergence struct {
	Steps         int
	MaxResidual   float64
	FinalResidual float64
}

func ConvergenceAnalyzer(r *types.Result) types.DataSet {
	c := &Convergence{Steps: r.Steps}
	if r.Trace == nil {
		return c
	}
	residuals := r.Trace.Residuals()
	if len(residuals) == 0 {
		return c
	}
	c.MaxResidual = floats.Max(residuals)
	c.FinalResidual = residuals[len(residuals)-1]
	return c
}

// ConvergenceRecorder writes a readable summary of every experiment into savePath
func ConvergenceRecorder(savePath string) types.Comparator {
	return func(names []string, ds []types.DataSet) error {
		lines := make([]string, 0, len(names))
		for i, name := range names {
			c := ds[i].(*Convergence)
			lines = append(lines, fmt.Sprintf("%s: steps %d, max residual %f, final residual %f",
				name, c.Steps, c.MaxResidual, c.FinalResidual))
		}
		return util.WriteToFile(path.Join(savePath, "convergence.txt"), lines...)
	}
}

// ValueVectorAnalyzer returns the values in the model's state enumeration order
func ValueVectorAnalyzer(r *types.Result) types.DataSet {
	return r.Values.Vector(r.Model.States())
}

// MaxNormComparator reports the max norm distance between the values of every
// experiment and those of the first one
func MaxNormComparator(report func(string, float64)) types.Comparator {
	return func(names []string, ds []types.DataSet) error {
		if len(names) == 0 {
			return nil
		}
		base := ds[0].([]float64)
		for i := 1; i < len(names); i++ {
			other := ds[i].([]float64)
			if len(other) != len(base) {
				return fmt.Errorf("experiment %s has %d values, expected %d", names[i], len(other), len(base))
			}
			dist := floats.Distance(base, other, math.Inf(1))
			klog.V(2).InfoS("Value disagreement", "base", names[0], "experiment", names[i], "maxNorm", dist)
			if report != nil {
				report(names[i], dist)
			}
		}
		return nil
	}
}

// ValueTableAnalyzer returns the final value store
func ValueTableAnalyzer(r *types.Result) types.DataSet {
	return r.Values
}

// ValueTableRecorder writes the value stores of all experiments into one JSON file
func ValueTableRecorder(savePath string) types.Comparator {
	return func(names []string, ds []types.DataSet) error {
		data := make(map[string]*types.ValueStore)
		for i, name := range names {
			data[name] = ds[i].(*types.ValueStore)
		}
		bs, err := json.Marshal(data)
		if err != nil {
			return err
		}
		return os.WriteFile(path.Join(savePath, "values.json"), bs, 0644)
	}
}
