package builder

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/core"
)

const (
	methodGridWorld = "GridWorld"
	minGridDim      = 1
	gridActions     = 4
)

// gridMoves lists the actions in emission order: right, down, left, up.
var gridMoves = [gridActions][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// GridWorld appends a rows×cols grid MDP. Cell (r, c) is the player-one
// state at offset r*cols+c; its four actions (right, down, left, up) are
// distribution nodes that move as intended with probability 1-slip and
// stay put with probability slip. Moves off the grid stay put. The
// distribution of action a of cell s sits at offset rows*cols + s*4 + a.
// Build the graph with core.WithSemantics(core.MDP).
func GridWorld(rows, cols int, slip float64) Constructor {
	return func(b *core.Builder[float64], _ config) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be >= %d): %w",
				methodGridWorld, rows, cols, minGridDim, ErrTooFewNodes)
		}
		if !(slip >= 0 && slip < 1) {
			return fmt.Errorf("%s: slip=%g not in [0,1): %w", methodGridWorld, slip, ErrInvalidProbability)
		}
		base := b.NumNodes()
		cells := rows * cols
		choices := make([]int, gridActions)
		for s := 0; s < cells; s++ {
			for a := range choices {
				choices[a] = base + cells + s*gridActions + a
			}
			b.AddChoice(core.PlayerOne, choices...)
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				self := base + r*cols + c
				for _, mv := range gridMoves {
					nr, nc := r+mv[0], c+mv[1]
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						b.AddDistribution(core.Edge[float64]{To: self, Weight: 1})
						continue
					}
					next := base + nr*cols + nc
					if slip == 0 {
						b.AddDistribution(core.Edge[float64]{To: next, Weight: 1})
						continue
					}
					b.AddDistribution(
						core.Edge[float64]{To: next, Weight: 1 - slip},
						core.Edge[float64]{To: self, Weight: slip},
					)
				}
			}
		}
		return nil
	}
}
