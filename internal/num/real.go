package num

import (
	"math"
	"math/big"
)

// Double operations work in the 2-state IEEE domain; there is no X to
// propagate. Conversions to and from logic vectors define the 4-state
// boundary explicitly.

// NegateD returns -lhs.
func NegateD(lhs *Num) *Num { return NewDouble(-lhs.Double()) }

// AddD returns lhs + rhs.
func AddD(lhs, rhs *Num) *Num { return NewDouble(lhs.Double() + rhs.Double()) }

// SubD returns lhs - rhs.
func SubD(lhs, rhs *Num) *Num { return NewDouble(lhs.Double() - rhs.Double()) }

// MulD returns lhs * rhs.
func MulD(lhs, rhs *Num) *Num { return NewDouble(lhs.Double() * rhs.Double()) }

// DivD returns lhs / rhs. IEEE semantics apply: division by zero gives
// an infinity or NaN, never a host fault.
func DivD(lhs, rhs *Num) *Num { return NewDouble(lhs.Double() / rhs.Double()) }

// PowD returns lhs ** rhs.
func PowD(lhs, rhs *Num) *Num { return NewDouble(math.Pow(lhs.Double(), rhs.Double())) }

// EqD returns lhs == rhs as 1 bit.
func EqD(lhs, rhs *Num) *Num { return NewBit(lhs.Double() == rhs.Double()) }

// NeqD returns lhs != rhs as 1 bit.
func NeqD(lhs, rhs *Num) *Num { return NewBit(lhs.Double() != rhs.Double()) }

// GtD returns lhs > rhs as 1 bit.
func GtD(lhs, rhs *Num) *Num { return NewBit(lhs.Double() > rhs.Double()) }

// GteD returns lhs >= rhs as 1 bit.
func GteD(lhs, rhs *Num) *Num { return NewBit(lhs.Double() >= rhs.Double()) }

// LtD returns lhs < rhs as 1 bit.
func LtD(lhs, rhs *Num) *Num { return NewBit(lhs.Double() < rhs.Double()) }

// LteD returns lhs <= rhs as 1 bit.
func LteD(lhs, rhs *Num) *Num { return NewBit(lhs.Double() <= rhs.Double()) }

// Atan2D returns atan2(lhs, rhs).
func Atan2D(lhs, rhs *Num) *Num { return NewDouble(math.Atan2(lhs.Double(), rhs.Double())) }

// HypotD returns hypot(lhs, rhs).
func HypotD(lhs, rhs *Num) *Num { return NewDouble(math.Hypot(lhs.Double(), rhs.Double())) }

// AcosD returns acos(lhs).
func AcosD(lhs *Num) *Num { return NewDouble(math.Acos(lhs.Double())) }

// AcoshD returns acosh(lhs).
func AcoshD(lhs *Num) *Num { return NewDouble(math.Acosh(lhs.Double())) }

// AsinD returns asin(lhs).
func AsinD(lhs *Num) *Num { return NewDouble(math.Asin(lhs.Double())) }

// AsinhD returns asinh(lhs).
func AsinhD(lhs *Num) *Num { return NewDouble(math.Asinh(lhs.Double())) }

// AtanD returns atan(lhs).
func AtanD(lhs *Num) *Num { return NewDouble(math.Atan(lhs.Double())) }

// AtanhD returns atanh(lhs).
func AtanhD(lhs *Num) *Num { return NewDouble(math.Atanh(lhs.Double())) }

// CeilD returns ceil(lhs).
func CeilD(lhs *Num) *Num { return NewDouble(math.Ceil(lhs.Double())) }

// CosD returns cos(lhs).
func CosD(lhs *Num) *Num { return NewDouble(math.Cos(lhs.Double())) }

// CoshD returns cosh(lhs).
func CoshD(lhs *Num) *Num { return NewDouble(math.Cosh(lhs.Double())) }

// ExpD returns exp(lhs).
func ExpD(lhs *Num) *Num { return NewDouble(math.Exp(lhs.Double())) }

// FloorD returns floor(lhs).
func FloorD(lhs *Num) *Num { return NewDouble(math.Floor(lhs.Double())) }

// Log10D returns log10(lhs).
func Log10D(lhs *Num) *Num { return NewDouble(math.Log10(lhs.Double())) }

// LogD returns the natural log of lhs.
func LogD(lhs *Num) *Num { return NewDouble(math.Log(lhs.Double())) }

// SinD returns sin(lhs).
func SinD(lhs *Num) *Num { return NewDouble(math.Sin(lhs.Double())) }

// SinhD returns sinh(lhs).
func SinhD(lhs *Num) *Num { return NewDouble(math.Sinh(lhs.Double())) }

// SqrtD returns sqrt(lhs).
func SqrtD(lhs *Num) *Num { return NewDouble(math.Sqrt(lhs.Double())) }

// TanD returns tan(lhs).
func TanD(lhs *Num) *Num { return NewDouble(math.Tan(lhs.Double())) }

// TanhD returns tanh(lhs).
func TanhD(lhs *Num) *Num { return NewDouble(math.Tanh(lhs.Double())) }

// IToRD converts an unsigned logic vector to double. X and Z bits read
// as 0.
func IToRD(lhs *Num) *Num {
	v := new(big.Int).AndNot(lhs.val, lhs.xz)
	f, _ := new(big.Float).SetInt(v).Float64()
	return NewDouble(f)
}

// ISToRD converts a logic vector read as signed at its own width to
// double. X and Z bits read as 0.
func ISToRD(lhs *Num) *Num {
	clean := &Num{
		flavor: FlavorLogic,
		width:  lhs.width,
		val:    new(big.Int).AndNot(lhs.val, lhs.xz),
		xz:     new(big.Int),
	}
	f, _ := new(big.Float).SetInt(clean.BigSigned()).Float64()
	return NewDouble(f)
}

// RToIS truncates a double toward zero into a signed 32-bit vector,
// wrapping like a C integer cast.
func RToIS(lhs *Num) *Num {
	return NewInt32(int32(int64(math.Trunc(lhs.Double()))))
}

// RToIRoundS rounds a double half away from zero into a signed vector
// of the given width.
func RToIRoundS(width int, lhs *Num) *Num {
	r := math.Round(lhs.Double())
	bi, _ := big.NewFloat(r).Int(nil)
	if bi == nil {
		bi = new(big.Int)
	}
	n := fromBig(width, bi)
	return newLogic(width, true, true, n.val, n.xz)
}

// RealToBits returns the IEEE bit pattern of the double as a 64-bit
// vector.
func RealToBits(lhs *Num) *Num {
	return NewUint64(math.Float64bits(lhs.Double()))
}

// BitsToRealD reinterprets the low 64 bits as an IEEE double. X and Z
// bits read as 0.
func BitsToRealD(lhs *Num) *Num {
	v := new(big.Int).AndNot(lhs.val, lhs.xz)
	v.And(v, mask(64))
	return NewDouble(math.Float64frombits(v.Uint64()))
}
