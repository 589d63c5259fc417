package grid

import (
	"fmt"
	"math"
	"path"

	"github.com/zeu5/mdp-vi/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ValueGrid holds the value of every cell, walls are NaN
type ValueGrid struct {
	Values [][]float64
	Height int
	Width  int
}

var _ plotter.GridXYZ = &ValueGrid{}

func (g *ValueGrid) Dims() (int, int) {
	return g.Width, g.Height
}

// Z flips rows so that row 0 of the layout is drawn on top
func (g *ValueGrid) Z(c, r int) float64 {
	return g.Values[g.Height-1-r][c]
}

func (g *ValueGrid) X(c int) float64 {
	return float64(c)
}

func (g *ValueGrid) Y(r int) float64 {
	return float64(r)
}

func (g *ValueGrid) Min() float64 {
	min := math.Inf(1)
	for _, row := range g.Values {
		for _, v := range row {
			if !math.IsNaN(v) && v < min {
				min = v
			}
		}
	}
	return min
}

func (g *ValueGrid) Max() float64 {
	max := math.Inf(-1)
	for _, row := range g.Values {
		for _, v := range row {
			if !math.IsNaN(v) && v > max {
				max = v
			}
		}
	}
	return max
}

// NewValueGrid reads the value of every cell of g from policy
func NewValueGrid(g *GridModel, policy types.Policy) *ValueGrid {
	values := make([][]float64, g.Height)
	for i := 0; i < g.Height; i++ {
		values[i] = make([]float64, g.Width)
		for j := 0; j < g.Width; j++ {
			if g.cells[i][j] == Wall {
				values[i][j] = math.NaN()
				continue
			}
			values[i][j] = policy.Value(&Position{I: i, J: j})
		}
	}
	return &ValueGrid{
		Values: values,
		Height: g.Height,
		Width:  g.Width,
	}
}

// ValueGridAnalyzer expects results of runs over a *GridModel
func ValueGridAnalyzer(r *types.Result) types.DataSet {
	g, ok := r.Model.(*GridModel)
	if !ok {
		return nil
	}
	return NewValueGrid(g, r.Policy)
}

// ValueHeatMapComparator saves one heat map per experiment into plotPath
func ValueHeatMapComparator(plotPath string) types.Comparator {
	return func(names []string, ds []types.DataSet) error {
		for i, name := range names {
			dataSet, ok := ds[i].(*ValueGrid)
			if !ok {
				return fmt.Errorf("experiment %s: expected a value grid dataset", name)
			}
			p := plot.New()
			p.Title.Text = name
			heatMap := plotter.NewHeatMap(dataSet, palette.Heat(20, 1))
			p.Add(heatMap)
			if err := p.Save(4*vg.Inch, 4*vg.Inch, path.Join(plotPath, name+"_values.png")); err != nil {
				return err
			}
		}
		return nil
	}
}

// PolicyString renders the greedy action of every cell, one row per line
func PolicyString(g *GridModel, policy types.Policy) string {
	out := ""
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			if g.cells[i][j] == Wall {
				out += "   #  "
				continue
			}
			action, ok := policy.Policy(&Position{I: i, J: j})
			if !ok {
				out += "   .  "
				continue
			}
			out += fmt.Sprintf("%6s", action.Hash())
		}
		out += "\n"
	}
	return out
}
