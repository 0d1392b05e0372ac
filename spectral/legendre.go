package spectral

// legendreAndDerivative evaluates P_n(x) and P_n'(x) with the three term
// recurrence and P'_{k+1} = P'_{k-1} + (2k+1)P_k.
func legendreAndDerivative(n int, x float64) (p, dp float64) {
	if n == 0 {
		return 1, 0
	}
	var (
		pm1, dpm1 = 1., 0.
	)
	p, dp = x, 1.
	for k := 1; k < n; k++ {
		fk := float64(k)
		pp1 := ((2*fk+1)*x*p - fk*pm1) / (fk + 1)
		dpp1 := dpm1 + (2*fk+1)*p
		pm1, p = p, pp1
		dpm1, dp = dp, dpp1
	}
	return
}

func legendreGauss(n int) (x, w []float64) {
	x = symmetricJacobiRoots(0, n)
	newtonPolish(x, func(xi float64) (float64, float64) {
		return legendreAndDerivative(n, xi)
	})
	w = make([]float64, n)
	for i, xi := range x {
		_, dp := legendreAndDerivative(n, xi)
		w[i] = 2. / ((1 - xi*xi) * dp * dp)
	}
	return
}

// legendreGaussLobatto places the interior points at the roots of P'_{n-1},
// which are the Gauss-Jacobi(1,1) points of order n-2.
func legendreGaussLobatto(n int) (x, w []float64) {
	var (
		m = n - 1
	)
	x = make([]float64, n)
	x[0], x[n-1] = -1, 1
	if n > 2 {
		interior := symmetricJacobiRoots(1, n-2)
		newtonPolish(interior, func(xi float64) (float64, float64) {
			p, dp := legendreAndDerivative(m, xi)
			d2p := (2*xi*dp - float64(m*(m+1))*p) / (1 - xi*xi)
			return dp, d2p
		})
		copy(x[1:n-1], interior)
	}
	w = make([]float64, n)
	norm := 2. / float64(n*m)
	for i, xi := range x {
		p, _ := legendreAndDerivative(m, xi)
		w[i] = norm / (p * p)
	}
	return
}
