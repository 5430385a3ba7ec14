package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":               true,
		"usuario@ejemplo.com":  true,
		"first.last+tag@x.org": true,
		"":                     false,
		"   ":                  false,
		"usuarioejemplo.com":   false,
		"usuario@":             false,
		"user@domain.c":        false,
		"user@domain.c0m":      false,
		"a@b@c.com":            false,
	}
	for input, want := range cases {
		require.Equal(t, want, IsValidEmail(input), "email %q", input)
	}
}

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone(""))
	require.True(t, IsValidPhone("12345678"))
	require.True(t, IsValidPhone("+123456789012345"))
	require.True(t, IsValidPhone(strings.Repeat("9", 15)))
	require.False(t, IsValidPhone("1234567"))
	require.False(t, IsValidPhone(strings.Repeat("9", 16)))
	require.False(t, IsValidPhone("12-345-678"))
	require.False(t, IsValidPhone("++12345678"))
}

func TestIsValidChileanPhone(t *testing.T) {
	require.True(t, IsValidChileanPhone("+56912345678"))
	require.False(t, IsValidChileanPhone("56912345678"))
	require.False(t, IsValidChileanPhone("+5691234567"))
	require.False(t, IsValidChileanPhone("+56812345678"))
	require.False(t, IsValidChileanPhone(""))
}

func TestNameRules(t *testing.T) {
	require.True(t, IsValidName("Jo"))
	require.False(t, IsValidName(" J "))

	require.True(t, IsValidPersonName("José Muñoz"))
	require.False(t, IsValidPersonName("Jo"))
	require.False(t, IsValidPersonName("R2D2 Droid"))
}

func TestIsValidMessageLength(t *testing.T) {
	require.True(t, IsValidMessageLength("Hola, quiero cotizar"))
	require.False(t, IsValidMessageLength(""))
	require.False(t, IsValidMessageLength("          "))
	require.False(t, IsValidMessageLength("corto"))
	require.True(t, IsValidMessageLength(strings.Repeat("a", 500)))
	require.False(t, IsValidMessageLength(strings.Repeat("a", 501)))
}

func TestSanitizeMessage(t *testing.T) {
	require.Equal(t, "a b", SanitizeMessage("  a   b  "))
	require.Equal(t, "line one line two", SanitizeMessage("line one\n\t line two"))

	inputs := []string{"", "  x  ", "a\n\nb\tc", "already clean"}
	for _, input := range inputs {
		once := SanitizeMessage(input)
		require.Equal(t, once, SanitizeMessage(once))
		require.LessOrEqual(t, len(SanitizeMessage(once)), len(once))
	}
}

func TestCoordinates(t *testing.T) {
	require.True(t, IsValidLatitude(90.0))
	require.False(t, IsValidLatitude(90.0001))
	require.True(t, IsValidLatitude(-90.0))
	require.False(t, IsValidLatitude(-90.0001))
	require.True(t, IsValidLongitude(180))
	require.False(t, IsValidLongitude(-180.5))
	require.True(t, AreValidCoordinates(-33.4489, -70.6693))
	require.True(t, AreValidCoordinates(0, 0))
	require.False(t, AreValidCoordinates(-33.4489, 200))
}
