package spectral

import (
	"fmt"
	"strings"
)

type Basis uint8

const (
	Legendre Basis = iota
	Chebyshev
	numBases
)

type Quadrature uint8

const (
	Gauss Quadrature = iota
	GaussLobatto
	numQuadratures
)

var (
	BasisNames = map[string]Basis{
		"legendre":  Legendre,
		"chebyshev": Chebyshev,
	}
	BasisPrintNames = []string{"Legendre", "Chebyshev"}

	QuadratureNames = map[string]Quadrature{
		"gauss":         Gauss,
		"gausslobatto":  GaussLobatto,
		"gauss-lobatto": GaussLobatto,
	}
	QuadraturePrintNames = []string{"Gauss", "GaussLobatto"}
)

func (b Basis) String() string {
	if b >= numBases {
		return fmt.Sprintf("Basis(%d)", uint8(b))
	}
	return BasisPrintNames[b]
}

func (q Quadrature) String() string {
	if q >= numQuadratures {
		return fmt.Sprintf("Quadrature(%d)", uint8(q))
	}
	return QuadraturePrintNames[q]
}

func ParseBasis(label string) (b Basis, err error) {
	var ok bool
	if b, ok = BasisNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown basis %q", label)
	}
	return
}

func ParseQuadrature(label string) (q Quadrature, err error) {
	var ok bool
	if q, ok = QuadratureNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown quadrature %q", label)
	}
	return
}

// IsImplemented reports whether operators exist for the pair.
func IsImplemented(b Basis, q Quadrature) bool {
	return b < numBases && q < numQuadratures
}

func MinimumNumberOfPoints(b Basis, q Quadrature) int {
	mustBeImplemented(b, q)
	if q == GaussLobatto {
		return 2
	}
	return 1
}

func MaximumNumberOfPoints(b Basis) int {
	switch b {
	case Legendre, Chebyshev:
		return 20
	}
	panic(fmt.Errorf("missing basis case for spectral quantity: %v", b))
}

func mustBeImplemented(b Basis, q Quadrature) {
	if b >= numBases {
		panic(fmt.Errorf("missing basis case for spectral quantity: %v", b))
	}
	if q >= numQuadratures {
		panic(fmt.Errorf("missing quadrature case for spectral quantity: %v", q))
	}
}

func checkNumberOfPoints(b Basis, q Quadrature, n int) {
	if min := MinimumNumberOfPoints(b, q); n < min {
		panic(fmt.Errorf("tried to work with less than the minimum number of collocation points for %v-%v quadrature: %d < %d",
			b, q, n, min))
	}
	if max := MaximumNumberOfPoints(b); n > max {
		panic(fmt.Errorf("exceeded maximum number of collocation points for the %v basis: %d > %d", b, n, max))
	}
}
