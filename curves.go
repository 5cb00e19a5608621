package pasta

import (
	"github.com/athanorlabs/go-pasta/pallas"
	"github.com/athanorlabs/go-pasta/types"
	"github.com/athanorlabs/go-pasta/vesta"
)

// Curve names the moduli of the curve both oracles of a Checker implement.
type Curve struct {
	Name string
	// RejectionPrefix labels rejection errors raised for this curve.
	RejectionPrefix string
	BaseModulus     types.U256
	ScalarModulus   types.U256
}

var (
	// Pallas describes the Pallas curve.
	Pallas = mustCurve(pallas.Name, pallas.RejectionPrefix, pallas.BaseModulus, pallas.ScalarModulus)

	// Vesta describes the Vesta curve.
	Vesta = mustCurve(vesta.Name, vesta.RejectionPrefix, vesta.BaseModulus, vesta.ScalarModulus)
)

func mustCurve(name, prefix, base, scalar string) Curve {
	p, err := types.ParseU256(base)
	if err != nil {
		panic(err)
	}
	r, err := types.ParseU256(scalar)
	if err != nil {
		panic(err)
	}
	return Curve{Name: name, RejectionPrefix: prefix, BaseModulus: p, ScalarModulus: r}
}

// NewOracle returns the local oracle for a curve by name, or nil if the name
// is unknown.
func NewOracle(name string, viaProjective bool) types.ProjectiveOracle {
	switch name {
	case pallas.Name:
		if viaProjective {
			return pallas.NewCurve(pallas.ViaProjective())
		}
		return pallas.NewCurve()
	case vesta.Name:
		if viaProjective {
			return vesta.NewCurve(vesta.ViaProjective())
		}
		return vesta.NewCurve()
	}
	return nil
}

// CurveByName returns the descriptor for name.
func CurveByName(name string) (Curve, bool) {
	switch name {
	case pallas.Name:
		return Pallas, true
	case vesta.Name:
		return Vesta, true
	}
	return Curve{}, false
}
