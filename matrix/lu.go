package matrix

import "fmt"

// LU holds a Doolittle factorisation A = L*U packed in one matrix: the
// strict lower triangle is L (unit diagonal implied), the upper triangle
// including the diagonal is U.
type LU struct {
	n  int
	lu []float64
}

// Factor computes the LU factorisation of the square matrix a without
// pivoting. Rows are processed in fixed order, so results are reproducible
// bit for bit.
//
// Complexity: O(n³) time, O(n²) memory.
func Factor(a *Dense) (*LU, error) {
	if a.r != a.c {
		return nil, fmt.Errorf("Factor: %dx%d: %w", a.r, a.c, ErrNonSquare)
	}
	n := a.r
	lu := make([]float64, n*n)
	var sum float64
	for i := 0; i < n; i++ {
		base := i * n
		// row i of U
		for j := i; j < n; j++ {
			sum = 0
			for k := 0; k < i; k++ {
				sum += lu[base+k] * lu[k*n+j]
			}
			lu[base+j] = a.data[base+j] - sum
		}
		pivot := lu[base+i]
		if pivot == 0 {
			return nil, fmt.Errorf("Factor: pivot %d: %w", i, ErrSingular)
		}
		// column i of L
		for j := i + 1; j < n; j++ {
			bj := j * n
			sum = 0
			for k := 0; k < i; k++ {
				sum += lu[bj+k] * lu[k*n+i]
			}
			lu[bj+i] = (a.data[bj+i] - sum) / pivot
		}
	}
	return &LU{n: n, lu: lu}, nil
}

// Solve returns x with A x = b by forward and back substitution.
//
// Complexity: O(n²) time, O(n) memory.
func (f *LU) Solve(b []float64) ([]float64, error) {
	n := f.n
	if len(b) != n {
		return nil, fmt.Errorf("Solve: rhs length %d, want %d: %w", len(b), n, ErrDimensionMismatch)
	}
	x := make([]float64, n)
	// L y = b
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// U x = y
	for i := n - 1; i >= 0; i-- {
		sum := x[i]
		for k := i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum / f.lu[i*n+i]
	}
	return x, nil
}

// L returns the unit lower triangular factor.
func (f *LU) L() *Dense {
	l := &Dense{r: f.n, c: f.n, data: make([]float64, f.n*f.n)}
	for i := 0; i < f.n; i++ {
		for j := 0; j < i; j++ {
			l.data[i*f.n+j] = f.lu[i*f.n+j]
		}
		l.data[i*f.n+i] = 1
	}
	return l
}

// U returns the upper triangular factor.
func (f *LU) U() *Dense {
	u := &Dense{r: f.n, c: f.n, data: make([]float64, f.n*f.n)}
	for i := 0; i < f.n; i++ {
		for j := i; j < f.n; j++ {
			u.data[i*f.n+j] = f.lu[i*f.n+j]
		}
	}
	return u
}

// SolveDense factors a and solves a x = b.
//
// Complexity: O(n³) time, O(n²) memory.
func SolveDense(a *Dense, b []float64) ([]float64, error) {
	f, err := Factor(a)
	if err != nil {
		return nil, err
	}
	return f.Solve(b)
}
