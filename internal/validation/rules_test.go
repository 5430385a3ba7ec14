package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormRules(t *testing.T) {
	rules := FormRules()

	require.Equal(t, "Name is required", rules.NameError("  "))
	require.Equal(t, "Name must be at least 3 characters", rules.NameError("Jo"))
	require.Equal(t, "Name may only contain letters", rules.NameError("Jo3l"))
	require.Empty(t, rules.NameError("Ana María"))

	require.Equal(t, "Email is required", rules.EmailError(""))
	require.Equal(t, "Invalid email", rules.EmailError("ana@"))
	require.Empty(t, rules.EmailError("ana@example.cl"))

	require.Empty(t, rules.PhoneError(""))
	require.Equal(t, "Invalid phone (8-15 digits)", rules.PhoneError("1234"))
	require.Empty(t, rules.PhoneError("+56912345678"))

	require.Equal(t, "Subject must be at least 5 characters", rules.SubjectError("Hey"))
	require.Empty(t, rules.SubjectError("Quote"))

	require.Equal(t, "Message is required", rules.MessageError(""))
	require.Equal(t, "Message must be at least 10 characters", rules.MessageError("short"))
	require.Empty(t, rules.MessageError(strings.Repeat("x", 2000)))
}

func TestChileanRules(t *testing.T) {
	rules := ChileanRules()

	require.Empty(t, rules.NameError("Jo"))
	require.Equal(t, "Phone is required", rules.PhoneError(""))
	require.Equal(t, "Phone must use the Chilean format (+56912345678)", rules.PhoneError("12345678"))
	require.Empty(t, rules.PhoneError("+56912345678"))
	require.Equal(t, "Message must be at most 500 characters", rules.MessageError(strings.Repeat("x", 501)))
}

func TestRulesForProfile(t *testing.T) {
	rules, err := RulesForProfile("")
	require.NoError(t, err)
	require.Equal(t, FormRules(), rules)

	rules, err = RulesForProfile("Chilean")
	require.NoError(t, err)
	require.Equal(t, ChileanRules(), rules)

	_, err = RulesForProfile("lenient")
	require.Error(t, err)
}
