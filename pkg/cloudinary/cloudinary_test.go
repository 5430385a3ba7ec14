package cloudinary

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPublicID(t *testing.T) {
	require.Equal(t, "IMG_20241019_101500_123", PublicID("IMG_20241019_101500_123.png"))
	require.Equal(t, "cover-final", PublicID("../cover final.jpeg"))
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"}, zerolog.Nop())
	require.Error(t, err)

	require.False(t, Config{CloudName: "demo", APIKey: "key"}.Enabled())
	require.True(t, Config{CloudName: "demo", APIKey: "key", APISecret: "secret"}.Enabled())
}
