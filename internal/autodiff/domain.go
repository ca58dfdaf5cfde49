package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/gradtrace/internal/tensor"
)

// DomainWarning reports that a forward computation produced non-finite values,
// for example log of a negative number or pow of a negative base with a
// fractional exponent. It is not an error: the node is created and the values
// propagate unchanged.
type DomainWarning struct {
	Op   string // op tag of the offending node
	Node NodeID
	NaN  int // number of NaN elements
	Inf  int // number of ±Inf elements
}

func (w DomainWarning) String() string {
	return fmt.Sprintf("%s (node %d): %d NaN, %d Inf", w.Op, w.Node, w.NaN, w.Inf)
}

// countNonFinite returns the number of NaN and infinite elements in t.
func countNonFinite(t *tensor.RawTensor) (nan, inf int) {
	count := func(v float64) {
		switch {
		case math.IsNaN(v):
			nan++
		case math.IsInf(v, 0):
			inf++
		}
	}

	switch t.DType() {
	case tensor.Float32:
		for _, v := range t.AsFloat32() {
			count(float64(v))
		}
	case tensor.Float64:
		for _, v := range t.AsFloat64() {
			count(v)
		}
	}
	return nan, inf
}

// checkDomain emits a DomainWarning when n's value is not finite everywhere.
func (g *Graph) checkDomain(n *Node) {
	nan, inf := countNonFinite(n.value)
	if nan == 0 && inf == 0 {
		return
	}

	w := DomainWarning{Op: n.Op(), Node: n.id, NaN: nan, Inf: inf}
	g.logger.Warn("domain warning",
		"op", w.Op,
		"node", int(w.Node),
		"nan", w.NaN,
		"inf", w.Inf)
	for _, fn := range g.onDomainWarning {
		fn(w)
	}
}
