package types

import (
	"bufio"
	"encoding/json"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ValueStore maps state hashes to values.
// States that were never assigned have value 0
type ValueStore struct {
	values map[string]float64
}

func NewValueStore() *ValueStore {
	return &ValueStore{
		values: make(map[string]float64),
	}
}

// Get does not insert missing keys, reads never mutate the store
func (v *ValueStore) Get(state string) float64 {
	val, ok := v.values[state]
	if !ok {
		return 0
	}
	return val
}

func (v *ValueStore) Set(state string, val float64) {
	v.values[state] = val
}

func (v *ValueStore) Has(state string) bool {
	_, ok := v.values[state]
	return ok
}

func (v *ValueStore) Len() int {
	return len(v.values)
}

// Keys returns the assigned state hashes in sorted order
func (v *ValueStore) Keys() []string {
	keys := maps.Keys(v.values)
	slices.Sort(keys)
	return keys
}

func (v *ValueStore) Clone() *ValueStore {
	return &ValueStore{
		values: maps.Clone(v.values),
	}
}

// Vector returns the values of the given states in order
func (v *ValueStore) Vector(states []State) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = v.Get(s.Hash())
	}
	return out
}

func (v *ValueStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.values)
}

func (v *ValueStore) UnmarshalJSON(bs []byte) error {
	values := make(map[string]float64)
	if err := json.Unmarshal(bs, &values); err != nil {
		return err
	}
	v.values = values
	return nil
}

// Record writes the store as JSON to filePath
func (v *ValueStore) Record(filePath string) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	if _, err := writer.Write(bs); err != nil {
		return err
	}
	return writer.Flush()
}
