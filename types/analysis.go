package types

// Result of a finished solver run handed to analyzers
type Result struct {
	Name   string
	Model  Model
	Policy Policy
	Values *ValueStore
	// nil unless tracing was enabled
	Trace *Trace
	Steps int
}

type DataSet interface{}

// Analyzer summarizes a single run
type Analyzer func(*Result) DataSet

// Comparator receives the experiment names and one dataset per experiment
type Comparator func([]string, []DataSet) error
