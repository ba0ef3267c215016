package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCPF_Valid(t *testing.T) {
	cpf, err := NewCPF("12345678909")
	require.NoError(t, err)
	require.Equal(t, "12345678909", cpf.Value())
	require.Equal(t, "123.456.789-09", cpf.Formatted())
}

func TestNewCPF_StripsFormatting(t *testing.T) {
	inputs := []string{
		"123.456.789-09",
		"123 456 789 09",
		"123456789-09",
		" 12345678909 ",
	}

	plain, err := NewCPF("12345678909")
	require.NoError(t, err)

	for _, in := range inputs {
		cpf, err := NewCPF(in)
		require.NoError(t, err, "input %q", in)
		require.True(t, cpf.Equals(plain), "input %q", in)
	}
}

func TestNewCPF_WrongLength(t *testing.T) {
	for _, in := range []string{"", "123", "123456789091", "abc"} {
		_, err := NewCPF(in)
		require.ErrorIs(t, err, ErrCPFLength, "input %q", in)
	}
}

func TestNewCPF_AllSameDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		in := ""
		for i := 0; i < 11; i++ {
			in += string(d)
		}
		_, err := NewCPF(in)
		require.ErrorIs(t, err, ErrCPFInvalid, "input %q", in)
	}
}

func TestNewCPF_BadCheckDigits(t *testing.T) {
	// first check digit wrong
	_, err := NewCPF("12345678919")
	require.ErrorIs(t, err, ErrCPFInvalid)

	// second check digit wrong
	_, err = NewCPF("12345678908")
	require.ErrorIs(t, err, ErrCPFInvalid)
}

func TestCPF_JSONAndString(t *testing.T) {
	cpf, err := NewCPF("111.444.777-35")
	require.NoError(t, err)
	require.Equal(t, "111.444.777-35", cpf.String())

	b, err := cpf.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"111.444.777-35"`, string(b))
}
