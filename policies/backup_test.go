package policies

import (
	"testing"

	"github.com/zeu5/mdp-vi/types"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestQValueDeterministicTransition(t *testing.T) {
	m := newTableModel().
		addState("a", false).
		addState("b", false).
		addTransition("a", "right", "b", 1, 2.5).
		addTransition("b", "left", "a", 1, 0)
	backup := NewBackup(m, 0.5)
	values := types.NewValueStore()
	values.Set("b", 3)

	q := backup.QValue(testState("a"), testAction("right"), values)
	if q != 2.5+0.5*3 {
		t.Errorf("expected %f, got %f", 2.5+0.5*3, q)
	}
}

func TestQValueStochasticTransition(t *testing.T) {
	m := newTableModel().
		addState("a", false).
		addState("b", false).
		addState("c", false).
		addTransition("a", "go", "b", 0.25, 4).
		addTransition("a", "go", "c", 0.75, -1)
	backup := NewBackup(m, 0.9)
	values := types.NewValueStore()
	values.Set("b", 10)

	expected := 0.25*(4+0.9*10) + 0.75*(-1+0.9*0)
	q := backup.QValue(testState("a"), testAction("go"), values)
	if !scalar.EqualWithinAbs(q, expected, 1e-12) {
		t.Errorf("expected %f, got %f", expected, q)
	}
}

func TestBestValueAndActionTiesGoToLastAction(t *testing.T) {
	m := newTableModel().
		addState("a", false).
		addState("t", true).
		addTransition("a", "first", "t", 1, 1).
		addTransition("a", "second", "t", 1, 1).
		addTransition("a", "worse", "t", 1, 0)
	backup := NewBackup(m, 0.9)

	best, action := backup.BestValueAndAction(testState("a"), types.NewValueStore())
	if best != 1 {
		t.Errorf("expected best value 1, got %f", best)
	}
	if action.Hash() != "second" {
		t.Errorf("expected tie to go to the last action, got %s", action.Hash())
	}
}

func TestBestValueAndActionNegativeValues(t *testing.T) {
	m := newTableModel().
		addState("a", false).
		addState("t", true).
		addTransition("a", "bad", "t", 1, -5).
		addTransition("a", "worse", "t", 1, -7)
	backup := NewBackup(m, 0.9)

	best, action := backup.BestValueAndAction(testState("a"), types.NewValueStore())
	if best != -5 || action.Hash() != "bad" {
		t.Errorf("expected (-5, bad), got (%f, %s)", best, action.Hash())
	}
}

func TestBestValueAndActionWithoutActionsPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected backup of a terminal state to panic")
		}
	}()
	m := chainModel()
	NewBackup(m, 0.9).BestValueAndAction(testState("S2"), types.NewValueStore())
}

func TestPredecessorMap(t *testing.T) {
	m := newTableModel().
		addState("a", false).
		addState("b", false).
		addState("c", true).
		addTransition("a", "go", "b", 1, 0).
		addTransition("b", "go", "c", 0.5, 0).
		addTransition("b", "go", "a", 0.5, 0).
		addTransition("b", "never", "c", 0, 0).
		addTransition("b", "alt", "c", 1, 0)
	pred := BuildPredecessorMap(m, NewBackup(m, 0.9))

	if !pred.Has(testState("a"), testState("b")) {
		t.Errorf("expected a to precede b")
	}
	if !pred.Has(testState("b"), testState("a")) {
		t.Errorf("expected b to precede a")
	}
	if got := pred.Get(testState("c")); len(got) != 1 || got[0].Hash() != "b" {
		t.Errorf("expected b as the only predecessor of c, got %v", got)
	}
	if got := pred.Get(testState("unknown")); len(got) != 0 {
		t.Errorf("expected no predecessors for an unknown state, got %v", got)
	}
	if pred.Len() != 3 {
		t.Errorf("expected 3 successor states, got %d", pred.Len())
	}
}

func TestPredecessorMapSkipsZeroProbability(t *testing.T) {
	m := newTableModel().
		addState("a", false).
		addState("b", false).
		addTransition("a", "go", "a", 1, 0).
		addTransition("a", "go", "b", 0, 0).
		addTransition("b", "go", "b", 1, 0)
	pred := BuildPredecessorMap(m, NewBackup(m, 0.9))
	if pred.Has(testState("a"), testState("b")) {
		t.Errorf("zero probability transitions should not create predecessors")
	}
}
