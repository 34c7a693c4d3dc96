// Package rational implements the exact rational-number time arithmetic the cutting
// engine exchanges across component boundaries: stream time-bases, PTS/DTS and the
// user-facing keep-interval endpoints are all rationals, never floats, so that
// repeated rebasing across GOPs never accumulates rounding error.
package rational

import (
	"math/big"
)

// AVTimeBase is the container-level microsecond unit used for start_time/duration
// on the media index, matching libavformat's AV_TIME_BASE.
const AVTimeBase = 1_000_000

// Rat is an exact rational number (seconds, or a stream time-base).
type Rat struct {
	r *big.Rat
}

// Zero is the additive identity.
var Zero = Rat{r: big.NewRat(0, 1)}

// New builds a Rat from a numerator/denominator pair.
func New(num, den int64) Rat {
	return Rat{r: big.NewRat(num, den)}
}

// FromInt builds a Rat representing a whole number.
func FromInt(n int64) Rat {
	return Rat{r: big.NewRat(n, 1)}
}

// FromTicks builds a Rat representing ticks*timeBase (a PTS/DTS expressed in its
// stream's time-base, converted into seconds).
func FromTicks(ticks int64, timeBase Rat) Rat {
	return Mul(FromInt(ticks), timeBase)
}

func (r Rat) ensure() *big.Rat {
	if r.r == nil {
		return big.NewRat(0, 1)
	}
	return r.r
}

// Add returns a+b.
func Add(a, b Rat) Rat { return Rat{r: new(big.Rat).Add(a.ensure(), b.ensure())} }

// Sub returns a-b.
func Sub(a, b Rat) Rat { return Rat{r: new(big.Rat).Sub(a.ensure(), b.ensure())} }

// Mul returns a*b.
func Mul(a, b Rat) Rat { return Rat{r: new(big.Rat).Mul(a.ensure(), b.ensure())} }

// Quo returns a/b. Panics if b is zero, matching the engine's invariant that every
// time-base used in a division is a well-formed nonzero rational.
func Quo(a, b Rat) Rat { return Rat{r: new(big.Rat).Quo(a.ensure(), b.ensure())} }

// Cmp returns -1, 0 or +1 as a is less than, equal to, or greater than b.
func Cmp(a, b Rat) int { return a.ensure().Cmp(b.ensure()) }

// Lt, Le, Gt, Ge are convenience wrappers around Cmp.
func Lt(a, b Rat) bool { return Cmp(a, b) < 0 }
func Le(a, b Rat) bool { return Cmp(a, b) <= 0 }
func Gt(a, b Rat) bool { return Cmp(a, b) > 0 }
func Ge(a, b Rat) bool { return Cmp(a, b) >= 0 }

// Float64 converts to an approximate float, for logging only.
func (r Rat) Float64() float64 {
	f, _ := r.ensure().Float64()
	return f
}

// String renders as "num/den" for logging.
func (r Rat) String() string {
	return r.ensure().RatString()
}

// RoundDiv returns round(a/b) as an integer, rounding half away from zero, matching
// Python's round() used throughout the original cutter for pts<->time conversions.
func RoundDiv(a, b Rat) int64 {
	q := Quo(a, b).ensure()
	num := q.Num()
	den := q.Denom()
	halfDen := new(big.Int).Mul(den, big.NewInt(2))

	doubled := new(big.Int).Mul(num, big.NewInt(2))
	quot := new(big.Int).Quo(doubled, halfDen)
	rem := new(big.Int).Rem(doubled, halfDen)

	// round-half-away-from-zero on doubled/halfDen
	absRem := new(big.Int).Abs(rem)
	absHalfDen := new(big.Int).Abs(halfDen)
	if absRem.Sign() != 0 {
		twice := new(big.Int).Mul(absRem, big.NewInt(2))
		if twice.Cmp(absHalfDen) >= 0 {
			if num.Sign()*den.Sign() >= 0 {
				quot.Add(quot, big.NewInt(1))
			} else {
				quot.Sub(quot, big.NewInt(1))
			}
		}
	}
	return quot.Int64()
}

// TruncDiv returns a/b truncated toward zero as an integer, matching the `int(...)`
// casts the original cutter applies when rebasing PTS/DTS into a new time-base.
func TruncDiv(a, b Rat) int64 {
	q := Quo(a, b).ensure()
	return new(big.Int).Quo(q.Num(), q.Denom()).Int64()
}
