package constraint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBinary is the lp_solve executable looked up in PATH.
const DefaultBinary = "lp_solve"

// LPSolve runs the lp_solve executable once per problem.
type LPSolve struct {
	// Binary is the executable path; empty means DefaultBinary.
	Binary string
	// Logger receives one debug line per call; zero value means the global logger.
	Logger *zerolog.Logger
}

// Solve writes p to lp_solve's stdin and parses its report.
func (s *LPSolve) Solve(ctx context.Context, p *Problem) (*Solution, error) {
	bin := s.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	logger := log.Logger
	if s.Logger != nil {
		logger = *s.Logger
	}

	var in bytes.Buffer
	if err := WriteLP(&in, p); err != nil {
		return nil, err
	}
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-S4")
	cmd.Stdin = &in
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	logger.Debug().Str("problem", p.Name).Int("vars", len(p.Vars)).Int("constraints", len(p.Constraints)).Msg("Running lp_solve")
	// lp_solve exits non-zero for infeasible and unbounded problems, so the
	// report is parsed before the exit status is considered.
	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	sol, err := ParseLPSolveOutput(&out, p)
	if err == nil || runErr == nil {
		return sol, err
	}
	if errors.Is(err, ErrInfeasible) || errors.Is(err, ErrUnbounded) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v: %s", ErrSolverFailed, runErr, bytes.TrimSpace(stderr.Bytes()))
}
