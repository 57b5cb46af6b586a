// Package num implements 4-state literal values for the expression IR.
//
// A Num is one of four flavors: a logic vector (each bit 0, 1, X, or Z),
// an IEEE double, a dynamic string, or a null reference. Logic vectors are
// stored as two arbitrary-precision planes: a value plane and an X/Z plane.
// A bit is X when both planes are set, Z when only the X/Z plane is set.
//
// Every operation here is a pure function: it reads its operands and
// returns a fresh Num sized to the caller-supplied result width. Operations
// never mutate their inputs. Width handling follows hardware-simulator
// rules: results are masked to the result width, unsigned reads past an
// operand's width see zero, and the signed operations take the bit position
// to extend from explicitly.
//
// Division and modulo by zero, arithmetic over any X/Z operand, and the
// degenerate exponent cases all produce defined results (usually all-X)
// rather than host errors.
package num
