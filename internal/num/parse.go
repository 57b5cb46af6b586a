package num

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Parse reads a literal in source syntax and returns its value.
//
// Accepted forms:
//
//	8'hff  4'sb10xz  'd42  'hx  12'o7_77   based vectors
//	'0 '1 'x 'z                            unbased single bits
//	42  4_000                              unsized decimal, signed
//	1.5  2e10  3.0e-2                      doubles
//	"text\n"                               strings
//	null                                   the null reference
//
// Negative values are not literals; wrap the parsed value in a negate
// operation instead.
func Parse(text string) (*Num, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("empty literal")
	}
	if s[0] == '"' {
		return parseString(s)
	}
	if s == "null" {
		return NewNull(), nil
	}
	if s[0] == '-' || s[0] == '+' {
		return nil, fmt.Errorf("literal %q: signs are operators, not part of the literal", text)
	}
	if i := strings.IndexByte(s, '\''); i >= 0 {
		return parseBased(s[:i], s[i+1:], text)
	}
	if isRealText(s) {
		clean := strings.ReplaceAll(s, "_", "")
		d, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, fmt.Errorf("literal %q: %w", text, err)
		}
		return NewDouble(d), nil
	}
	return parseDecimal(s, text)
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(text string) *Num {
	n, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return n
}

// isRealText reports whether an unbased token is a double: it has a
// decimal point or an exponent.
func isRealText(s string) bool {
	if strings.ContainsAny(s, ".") {
		return true
	}
	// "2e10" is real; "e" must follow a digit to avoid claiming idents.
	for i := 1; i < len(s); i++ {
		if (s[i] == 'e' || s[i] == 'E') && s[i-1] >= '0' && s[i-1] <= '9' {
			return true
		}
	}
	return false
}

func parseDecimal(s, orig string) (*Num, error) {
	clean := strings.ReplaceAll(s, "_", "")
	v, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return nil, fmt.Errorf("literal %q: bad decimal", orig)
	}
	w := v.BitLen()
	if w < 32 {
		w = 32
	}
	// Unbased decimals are signed and unsized.
	return newLogic(w, true, false, v, new(big.Int)), nil
}

func parseBased(sizeText, rest, orig string) (*Num, error) {
	sizeText = strings.TrimSpace(sizeText)
	rest = strings.TrimSpace(rest)

	width := 0
	if sizeText != "" {
		clean := strings.ReplaceAll(sizeText, "_", "")
		w, err := strconv.Atoi(clean)
		if err != nil || w < 1 {
			return nil, fmt.Errorf("literal %q: bad size %q", orig, sizeText)
		}
		width = w
	}

	// Unbased unsized single bits: '0 '1 'x 'z.
	if sizeText == "" && len(rest) == 1 {
		switch rest[0] {
		case '0':
			return newLogic(1, false, false, new(big.Int), new(big.Int)), nil
		case '1':
			return newLogic(1, false, false, big.NewInt(1), new(big.Int)), nil
		case 'x', 'X':
			return newLogic(1, false, false, big.NewInt(1), big.NewInt(1)), nil
		case 'z', 'Z', '?':
			return newLogic(1, false, false, new(big.Int), big.NewInt(1)), nil
		}
	}

	signed := false
	if rest != "" && (rest[0] == 's' || rest[0] == 'S') {
		signed = true
		rest = strings.TrimSpace(rest[1:])
	}
	if rest == "" {
		return nil, fmt.Errorf("literal %q: missing base", orig)
	}
	base := rest[0]
	digits := strings.ReplaceAll(strings.TrimSpace(rest[1:]), "_", "")
	if digits == "" {
		return nil, fmt.Errorf("literal %q: missing digits", orig)
	}

	var bitsPer int
	switch base {
	case 'b', 'B':
		bitsPer = 1
	case 'o', 'O':
		bitsPer = 3
	case 'h', 'H':
		bitsPer = 4
	case 'd', 'D':
		return parseBasedDecimal(width, signed, digits, orig)
	default:
		return nil, fmt.Errorf("literal %q: bad base %q", orig, string(base))
	}

	natural := len(digits) * bitsPer
	val := new(big.Int)
	xz := new(big.Int)
	for pos, d := range []byte(digits) {
		lo := (len(digits) - 1 - pos) * bitsPer
		var dv, dx int
		switch {
		case d == 'x' || d == 'X':
			dv = (1 << bitsPer) - 1
			dx = dv
		case d == 'z' || d == 'Z' || d == '?':
			dx = (1 << bitsPer) - 1
		default:
			v := digitVal(d)
			if v < 0 || v >= 1<<bitsPer {
				return nil, fmt.Errorf("literal %q: bad digit %q", orig, string(d))
			}
			dv = v
		}
		for b := 0; b < bitsPer; b++ {
			val.SetBit(val, lo+b, uint(dv>>b&1))
			xz.SetBit(xz, lo+b, uint(dx>>b&1))
		}
	}

	sized := width > 0
	if width == 0 {
		width = natural
		if width < 32 {
			width = 32
		}
	}
	// A leading X or Z digit extends left to the full width.
	if width > natural && natural > 0 && xz.Bit(natural-1) == 1 {
		fillVal := val.Bit(natural - 1)
		for i := natural; i < width; i++ {
			xz.SetBit(xz, i, 1)
			val.SetBit(val, i, fillVal)
		}
	}
	return newLogic(width, signed, sized, val, xz), nil
}

func parseBasedDecimal(width int, signed bool, digits, orig string) (*Num, error) {
	sized := width > 0
	// A lone x or z fills the whole vector.
	if len(digits) == 1 && (digits[0] == 'x' || digits[0] == 'X' ||
		digits[0] == 'z' || digits[0] == 'Z' || digits[0] == '?') {
		if width == 0 {
			width = 32
		}
		m := mask(width)
		if digits[0] == 'x' || digits[0] == 'X' {
			return newLogic(width, signed, sized, m, m), nil
		}
		return newLogic(width, signed, sized, new(big.Int), m), nil
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("literal %q: bad decimal digits", orig)
	}
	if width == 0 {
		width = v.BitLen()
		if width < 32 {
			width = 32
		}
	}
	return newLogic(width, signed, sized, v, new(big.Int)), nil
}

func parseString(s string) (*Num, error) {
	if len(s) < 2 || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("literal %s: unterminated string", s)
	}
	body := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return nil, fmt.Errorf("literal %s: trailing backslash", s)
		}
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'a':
			b.WriteByte('\a')
		case '\\', '"':
			b.WriteByte(e)
		case 'x':
			hi := 0
			j := i + 1
			for ; j < len(body) && j <= i+2; j++ {
				d := digitVal(body[j])
				if d < 0 || d > 15 {
					break
				}
				hi = hi*16 + d
			}
			if j == i+1 {
				return nil, fmt.Errorf("literal %s: bad hex escape", s)
			}
			b.WriteByte(byte(hi))
			i = j - 1
		case '0', '1', '2', '3', '4', '5', '6', '7':
			oct := 0
			j := i
			for ; j < len(body) && j < i+3; j++ {
				if body[j] < '0' || body[j] > '7' {
					break
				}
				oct = oct*8 + int(body[j]-'0')
			}
			b.WriteByte(byte(oct))
			i = j - 1
		default:
			return nil, fmt.Errorf("literal %s: bad escape \\%s", s, string(e))
		}
	}
	return NewString(b.String()), nil
}
