package constraint

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// lp_solve treats magnitudes at or above 1e30 as infinite.
const lpInfinity = 1e30

func lpNumber(f float64) string {
	switch {
	case math.IsInf(f, 1) || f >= lpInfinity:
		return "1e30"
	case math.IsInf(f, -1) || f <= -lpInfinity:
		return "-1e30"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeTerms(w *bufio.Writer, terms []Term) {
	for i, t := range terms {
		if i > 0 {
			w.WriteString(" ")
		}
		coef := lpNumber(t.Coef)
		if t.Coef >= 0 {
			coef = "+" + coef
		}
		fmt.Fprintf(w, "%s x%d", coef, t.Var)
	}
}

// WriteLP writes p in lp_solve's LP format. Variables are named x0, x1, ...
// in Vars order; constraints R1, R2, ....
func WriteLP(out io.Writer, p *Problem) error {
	w := bufio.NewWriter(out)
	if p.Name != "" {
		fmt.Fprintf(w, "/* %s */\n", p.Name)
	}
	if p.Maximize {
		w.WriteString("max: ")
	} else {
		w.WriteString("min: ")
	}
	writeTerms(w, p.Objective)
	w.WriteString(";\n")

	for i, c := range p.Constraints {
		fmt.Fprintf(w, "R%d: ", i+1)
		if len(c.Terms) == 0 {
			w.WriteString("0 x0")
		}
		writeTerms(w, c.Terms)
		fmt.Fprintf(w, " %s %s;\n", c.Rel, lpNumber(c.RHS))
	}
	for i, v := range p.Vars {
		if v.Lo > v.Hi {
			return fmt.Errorf("%w: variable %s has bounds [%g, %g]", ErrInfeasible, v.Name, v.Lo, v.Hi)
		}
		fmt.Fprintf(w, "%s <= x%d <= %s;\n", lpNumber(v.Lo), i, lpNumber(v.Hi))
	}
	return w.Flush()
}

// ParseLPSolveOutput reads the report lp_solve prints with -S4 and returns
// the solution for p.
func ParseLPSolveOutput(r io.Reader, p *Problem) (*Solution, error) {
	sc := bufio.NewScanner(r)
	sol := &Solution{Values: make([]float64, len(p.Vars))}
	var sawValues, inValues bool
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.Contains(line, "infeasible"):
			return nil, ErrInfeasible
		case strings.Contains(line, "unbounded"):
			return nil, ErrUnbounded
		case strings.HasPrefix(line, "Value of objective function:"):
			f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "Value of objective function:")), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: objective %q: %v", ErrSolverFailed, line, err)
			}
			sol.Objective = f
		case strings.HasPrefix(line, "Actual values of the variables"):
			inValues, sawValues = true, true
		case strings.HasPrefix(line, "Actual values of the constraints"), strings.HasPrefix(line, "Dual value"):
			inValues = false
		case inValues && line != "":
			fields := strings.Fields(line)
			if len(fields) != 2 || !strings.HasPrefix(fields[0], "x") {
				return nil, fmt.Errorf("%w: unexpected line %q", ErrSolverFailed, line)
			}
			idx, err := strconv.Atoi(fields[0][1:])
			if err != nil || idx < 0 || idx >= len(sol.Values) {
				return nil, fmt.Errorf("%w: unknown variable %q", ErrSolverFailed, fields[0])
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: value %q: %v", ErrSolverFailed, fields[1], err)
			}
			sol.Values[idx] = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailed, err)
	}
	if !sawValues && len(p.Vars) > 0 {
		return nil, fmt.Errorf("%w: no variable values in output", ErrSolverFailed)
	}
	return sol, nil
}
