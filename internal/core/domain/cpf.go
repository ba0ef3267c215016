package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCPFLength  = errors.New("cpf must have 11 digits")
	ErrCPFInvalid = errors.New("invalid cpf")
)

// CPF is the customer's national identity number, stored in its normalized
// 11-digit form. The zero value is invalid; always construct through NewCPF.
type CPF struct {
	value string
}

// NewCPF strips formatting from raw and validates the check digits.
func NewCPF(raw string) (CPF, error) {
	cleaned := cleanCPF(raw)

	if len(cleaned) != 11 {
		return CPF{}, ErrCPFLength
	}
	if allSameDigit(cleaned) {
		return CPF{}, ErrCPFInvalid
	}
	if checkDigit(cleaned[:9], 10) != int(cleaned[9]-'0') {
		return CPF{}, ErrCPFInvalid
	}
	if checkDigit(cleaned[:10], 11) != int(cleaned[10]-'0') {
		return CPF{}, ErrCPFInvalid
	}

	return CPF{value: cleaned}, nil
}

func cleanCPF(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a mod-11 check digit over digits with descending weights
// starting at firstWeight. A remainder of 10 or 11 maps to 0.
func checkDigit(digits string, firstWeight int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * (firstWeight - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 || rem == 11 {
		rem = 0
	}
	return rem
}

func (c CPF) Value() string {
	return c.value
}

func (c CPF) Formatted() string {
	return fmt.Sprintf("%s.%s.%s-%s", c.value[0:3], c.value[3:6], c.value[6:9], c.value[9:11])
}

func (c CPF) Equals(other CPF) bool {
	return c.value == other.value
}

func (c CPF) String() string {
	return c.Formatted()
}

func (c CPF) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Formatted() + `"`), nil
}
