package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeu5/mdp-vi/types"
)

var (
	ErrEmptyLayout  = errors.New("grid: empty layout")
	ErrRaggedLayout = errors.New("grid: rows have different widths")
	ErrInvalidCell  = errors.New("grid: invalid cell")
	ErrInvalidNoise = errors.New("grid: noise must be in [0, 1]")
)

const (
	Wall  = "#"
	Start = "S"
	Empty = " "
)

// GridModel is a gridworld MDP. Cells are walls, empty cells or exit cells
// labelled with their exit reward. Moves succeed with probability 1-Noise and
// slip to either perpendicular direction with Noise/2 each. Moving into a
// wall or the border leaves the agent in place. Exiting from an exit cell
// leads to the single absorbing TerminalState
type GridModel struct {
	Height       int
	Width        int
	Noise        float64
	LivingReward float64

	cells  [][]string
	exits  map[string]float64
	start  *Position
	states []types.State
}

var _ types.Model = &GridModel{}

type Option func(*GridModel)

func WithNoise(noise float64) Option {
	return func(g *GridModel) {
		g.Noise = noise
	}
}

func WithLivingReward(reward float64) Option {
	return func(g *GridModel) {
		g.LivingReward = reward
	}
}

// NewGridModel parses layout, row 0 is the top row
func NewGridModel(layout [][]string, opts ...Option) (*GridModel, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyLayout
	}
	g := &GridModel{
		Height: len(layout),
		Width:  len(layout[0]),
		Noise:  0.2,
		cells:  make([][]string, len(layout)),
		exits:  make(map[string]float64),
		states: make([]types.State, 0),
	}
	for _, o := range opts {
		o(g)
	}
	if g.Noise < 0 || g.Noise > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNoise, g.Noise)
	}

	// terminal first, then cells in row major order
	g.states = append(g.states, TerminalState)
	for i, row := range layout {
		if len(row) != g.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedLayout, i, len(row), g.Width)
		}
		g.cells[i] = make([]string, g.Width)
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == "_" {
				cell = Empty
			}
			g.cells[i][j] = cell
			if cell == Wall {
				continue
			}
			pos := &Position{I: i, J: j}
			switch cell {
			case Empty:
			case Start:
				g.start = pos
			default:
				reward, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %q at (%d, %d)", ErrInvalidCell, cell, i, j)
				}
				g.exits[pos.Hash()] = reward
			}
			g.states = append(g.states, pos)
		}
	}
	return g, nil
}

func (g *GridModel) States() []types.State {
	return g.states
}

// Start cell of the layout, nil if none is marked
func (g *GridModel) Start() *Position {
	return g.start
}

func (g *GridModel) IsTerminal(s types.State) bool {
	return s.Hash() == TerminalState.Hash()
}

func (g *GridModel) isExit(s types.State) bool {
	_, ok := g.exits[s.Hash()]
	return ok
}

func (g *GridModel) Actions(s types.State) []types.Action {
	if g.IsTerminal(s) {
		return []types.Action{}
	}
	if g.isExit(s) {
		return []types.Action{ExitMovement}
	}
	return append([]types.Action{}, AllMovements...)
}

func (g *GridModel) Transitions(s types.State, a types.Action) []types.Transition {
	if g.IsTerminal(s) {
		return []types.Transition{}
	}
	movement, ok := a.(*Movement)
	if !ok {
		return []types.Transition{}
	}
	if g.isExit(s) {
		if movement.Direction != ExitMovement.Direction {
			return []types.Transition{}
		}
		return []types.Transition{{Next: TerminalState, Prob: 1}}
	}
	if movement.Direction == ExitMovement.Direction {
		return []types.Transition{}
	}
	pos := s.(*Position)

	left, right := movement.perpendicular()
	outcomes := []types.Transition{
		{Next: g.move(pos, movement), Prob: 1 - g.Noise},
		{Next: g.move(pos, left), Prob: g.Noise / 2},
		{Next: g.move(pos, right), Prob: g.Noise / 2},
	}
	return merge(outcomes)
}

func (g *GridModel) Reward(s types.State, a types.Action, _ types.State) float64 {
	if g.IsTerminal(s) {
		return 0
	}
	if reward, ok := g.exits[s.Hash()]; ok {
		return reward
	}
	return g.LivingReward
}

func (g *GridModel) move(p *Position, m *Movement) *Position {
	next := &Position{I: p.I, J: p.J}
	switch m.Direction {
	case "Up":
		next.I -= 1
	case "Down":
		next.I += 1
	case "Left":
		next.J -= 1
	case "Right":
		next.J += 1
	}
	if next.I < 0 || next.I >= g.Height || next.J < 0 || next.J >= g.Width {
		return p
	}
	if g.cells[next.I][next.J] == Wall {
		return p
	}
	return next
}

// merge sums probabilities of identical next states, keeping first occurrence order
// and dropping zero probability outcomes
func merge(outcomes []types.Transition) []types.Transition {
	result := make([]types.Transition, 0, len(outcomes))
	index := make(map[string]int)
	for _, o := range outcomes {
		if o.Prob <= 0 {
			continue
		}
		key := o.Next.Hash()
		if i, ok := index[key]; ok {
			result[i].Prob += o.Prob
			continue
		}
		index[key] = len(result)
		result = append(result, o)
	}
	return result
}

type Position struct {
	I int
	J int
}

var _ types.State = &Position{}

// TerminalState is the absorbing state reached after exiting
var TerminalState = &Position{I: -1, J: -1}

func (p *Position) Hash() string {
	if p.I == -1 && p.J == -1 {
		return "TERMINAL_STATE"
	}
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}

func (p *Position) Eq(other Position) bool {
	return p.I == other.I && p.J == other.J
}

type Movement struct {
	Direction string
}

var _ types.Action = &Movement{}

func (m *Movement) Hash() string {
	return m.Direction
}

func (m *Movement) perpendicular() (*Movement, *Movement) {
	switch m.Direction {
	case "Up", "Down":
		return MovementLeft, MovementRight
	default:
		return MovementUp, MovementDown
	}
}

var (
	MovementUp                   = &Movement{"Up"}
	MovementDown                 = &Movement{"Down"}
	MovementLeft                 = &Movement{"Left"}
	MovementRight                = &Movement{"Right"}
	ExitMovement                 = &Movement{"Exit"}
	AllMovements  []types.Action = []types.Action{
		MovementUp,
		MovementDown,
		MovementLeft,
		MovementRight,
	}
)
