package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// floatRepr formats f with the shortest round-tripping digits, switching to
// exponent notation outside (1e-4, 1e16] like CPython's float repr.
func floatRepr(f float64, addDot0 bool) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	formatted := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(formatted, "e")
	exp, _ := strconv.Atoi(exponent)
	sign := ""
	if strings.HasPrefix(mantissa, "-") {
		sign = "-"
		mantissa = mantissa[1:]
	}
	digits := strings.Replace(mantissa, ".", "", 1)
	decpt := exp + 1
	builder := strings.Builder{}
	builder.WriteString(sign)
	if decpt > -4 && decpt <= 16 {
		switch {
		case decpt <= 0:
			builder.WriteString("0.")
			builder.WriteString(strings.Repeat("0", -decpt))
			builder.WriteString(digits)
		case decpt >= len(digits):
			builder.WriteString(digits)
			builder.WriteString(strings.Repeat("0", decpt-len(digits)))
			if addDot0 {
				builder.WriteString(".0")
			}
		default:
			builder.WriteString(digits[:decpt])
			builder.WriteString(".")
			builder.WriteString(digits[decpt:])
		}
		return builder.String()
	}
	builder.WriteString(digits[:1])
	if len(digits) > 1 {
		builder.WriteString(".")
		builder.WriteString(digits[1:])
	}
	expSign := "+"
	if exp < 0 {
		expSign = "-"
		exp = -exp
	}
	builder.WriteString(fmt.Sprintf("e%s%02d", expSign, exp))
	return builder.String()
}

func complexRepr(c complex128) string {
	re, im := real(c), imag(c)
	if re == 0 && !math.Signbit(re) {
		return floatRepr(im, false) + "j"
	}
	imText := floatRepr(im, false)
	if !strings.HasPrefix(imText, "-") {
		imText = "+" + imText
	}
	return "(" + floatRepr(re, false) + imText + "j)"
}

func quoteFor(s string) byte {
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		return '"'
	}
	return '\''
}

// strRepr quotes s like Python's repr of a str.
func strRepr(s string) string {
	quote := quoteFor(s)
	builder := strings.Builder{}
	builder.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 && isSurrogate(s[i:]) {
			fmt.Fprintf(&builder, `\u%04x`, surrogate(s[i:]))
			i += 3
			continue
		}
		i += size
		switch {
		case r == rune(quote) || r == '\\':
			builder.WriteByte('\\')
			builder.WriteRune(r)
		case r == '\t':
			builder.WriteString(`\t`)
		case r == '\n':
			builder.WriteString(`\n`)
		case r == '\r':
			builder.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(&builder, `\x%02x`, r)
		case r < 0x7f:
			builder.WriteRune(r)
		case unicode.IsPrint(r):
			builder.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&builder, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&builder, `\u%04x`, r)
		default:
			fmt.Fprintf(&builder, `\U%08x`, r)
		}
	}
	builder.WriteByte(quote)
	return builder.String()
}

// isSurrogate reports whether s starts with a WTF-8 encoded surrogate code point.
func isSurrogate(s string) bool {
	return len(s) >= 3 && s[0] == 0xed && s[1] >= 0xa0 && s[1] <= 0xbf && s[2] >= 0x80 && s[2] <= 0xbf
}

func surrogate(s string) rune {
	return rune(s[0]&0x0f)<<12 | rune(s[1]&0x3f)<<6 | rune(s[2]&0x3f)
}

// bytesRepr quotes b like Python's repr of bytes.
func bytesRepr(b []byte) string {
	quote := quoteFor(string(b))
	builder := strings.Builder{}
	builder.WriteByte('b')
	builder.WriteByte(quote)
	for _, c := range b {
		switch {
		case c == quote || c == '\\':
			builder.WriteByte('\\')
			builder.WriteByte(c)
		case c == '\t':
			builder.WriteString(`\t`)
		case c == '\n':
			builder.WriteString(`\n`)
		case c == '\r':
			builder.WriteString(`\r`)
		case c < ' ' || c >= 0x7f:
			fmt.Fprintf(&builder, `\x%02x`, c)
		default:
			builder.WriteByte(c)
		}
	}
	builder.WriteByte(quote)
	return builder.String()
}
