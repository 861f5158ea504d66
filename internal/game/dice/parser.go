package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is one signed group of identical dice, e.g. the "-1d4" in "1d8+1-1d4".
type Term struct {
	Count    int
	Sides    int
	Negative bool
}

// Expression is a parsed signed sum of dice terms and flat modifiers.
//
// Invariant: every Term has Count >= 1 and Sides >= 2.
type Expression struct {
	Raw      string // original input string
	Terms    []Term
	Modifier int // net flat modifier
}

// Parse parses a dice expression.
// Supported forms: "d20", "1d8+1", "2d6-1", "-1d4", "+0", "1d10+1+1d4".
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns an Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	out := Expression{Raw: expr}
	for len(s) > 0 {
		negative := false
		switch s[0] {
		case '-':
			negative = true
			s = s[1:]
		case '+':
			s = s[1:]
		}
		end := strings.IndexAny(s, "+-")
		if end < 0 {
			end = len(s)
		}
		tok := s[:end]
		s = s[end:]
		if tok == "" {
			return Expression{}, fmt.Errorf("dice: empty term in %q", expr)
		}

		dIdx := strings.Index(tok, "d")
		if dIdx < 0 {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
			}
			if negative {
				n = -n
			}
			out.Modifier += n
			continue
		}

		count := 1
		if dIdx > 0 {
			var err error
			count, err = strconv.Atoi(tok[:dIdx])
			if err != nil {
				return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
			}
			if count <= 0 {
				return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
			}
		}
		sides, err := strconv.Atoi(tok[dIdx+1:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
		}
		if sides < 2 {
			return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", expr)
		}
		out.Terms = append(out.Terms, Term{Count: count, Sides: sides, Negative: negative})
	}
	return out, nil
}

// Join concatenates dice expressions into one sum, skipping empty parts and
// inserting "+" where a part carries no sign.
func Join(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 && p[0] != '+' && p[0] != '-' {
			b.WriteByte('+')
		}
		b.WriteString(p)
	}
	return b.String()
}
