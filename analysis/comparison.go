package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/zeu5/mdp-vi/types"
	"github.com/zeu5/mdp-vi/util"
	"k8s.io/klog/v2"
)

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	// folder for all outputs, created if missing
	RecordPath string
	// write the final value store of every experiment
	RecordValues bool
	// write the trace of every experiment, requires tracing in the experiment config
	RecordTraces bool
}

type analysis struct {
	name       string
	analyzer   types.Analyzer
	comparator types.Comparator
}

// Comparison runs several experiments over the same model
type Comparison struct {
	Experiments []*Experiment
	model       types.Model
	analyses    []analysis
	cConfig     *ComparisonConfig
}

// NewComparison creates a comparison instance
func NewComparison(model types.Model, config *ComparisonConfig) (*Comparison, error) {
	if config == nil {
		config = &ComparisonConfig{}
	}
	if config.RecordPath != "" {
		folders := []string{config.RecordPath}
		if config.RecordValues {
			folders = append(folders, path.Join(config.RecordPath, "values"))
		}
		if config.RecordTraces {
			folders = append(folders, path.Join(config.RecordPath, "traces"))
		}
		for _, f := range folders {
			if err := os.MkdirAll(f, 0777); err != nil {
				return nil, fmt.Errorf("creating record folder: %w", err)
			}
		}
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		model:       model,
		analyses:    make([]analysis, 0),
		cConfig:     config,
	}, nil
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer types.Analyzer, comparator types.Comparator) {
	c.analyses = append(c.analyses, analysis{name: name, analyzer: analyzer, comparator: comparator})
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run every experiment in order, then hand the datasets to the comparators
func (c *Comparison) Run(ctx context.Context) error {
	if err := c.recordConfig(); err != nil {
		return err
	}
	datasets := make([][]types.DataSet, len(c.analyses))
	for i := range c.analyses {
		datasets[i] = make([]types.DataSet, len(c.Experiments))
	}
	names := make([]string, len(c.Experiments))

	for i, e := range c.Experiments {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		fmt.Printf("Experiment %d/%d: %s\n", i+1, len(c.Experiments), e.Name)
		result, err := e.Run(c.model)
		if err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		klog.InfoS("Experiment finished", "experiment", e.Name, "steps", result.Steps)
		if err := c.record(result); err != nil {
			return fmt.Errorf("recording experiment %s: %w", e.Name, err)
		}
		for j, a := range c.analyses {
			datasets[j][i] = a.analyzer(result)
		}
		names[i] = e.Name
	}

	for j, a := range c.analyses {
		if err := a.comparator(names, datasets[j]); err != nil {
			return fmt.Errorf("analysis %s: %w", a.name, err)
		}
	}
	return nil
}

func (c *Comparison) recordConfig() error {
	if c.cConfig.RecordPath == "" {
		return nil
	}
	data := make(map[string]interface{})
	data["states"] = len(c.model.States())
	experiments := make(map[string]interface{})
	for _, e := range c.Experiments {
		experiments[e.Name] = map[string]interface{}{
			"scheduler":  e.scheduler.Name(),
			"discount":   e.config.Discount,
			"iterations": e.config.Iterations,
			"theta":      e.config.Theta,
		}
	}
	data["experiments"] = experiments
	bs, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	return util.WriteToFile(path.Join(c.cConfig.RecordPath, "config.json"), string(bs))
}

func (c *Comparison) record(r *types.Result) error {
	if c.cConfig.RecordPath == "" {
		return nil
	}
	if c.cConfig.RecordValues {
		if err := r.Values.Record(path.Join(c.cConfig.RecordPath, "values", r.Name+".json")); err != nil {
			return err
		}
	}
	if c.cConfig.RecordTraces && r.Trace != nil {
		lines := make([]string, r.Trace.Len())
		for i := 0; i < r.Trace.Len(); i++ {
			step, state, oldVal, newVal, _ := r.Trace.Get(i)
			lines[i] = strconv.Itoa(step) + "\t" + state + "\t" +
				strconv.FormatFloat(oldVal, 'g', -1, 64) + "\t" + strconv.FormatFloat(newVal, 'g', -1, 64)
		}
		return util.WriteToFile(path.Join(c.cConfig.RecordPath, "traces", r.Name+".tsv"), lines...)
	}
	return nil
}
