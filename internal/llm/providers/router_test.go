package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/optiforge/orsolve/internal/llm/errors"
)

func TestNewRouter(t *testing.T) {
	t.Run("all_known_providers", func(t *testing.T) {
		router, err := NewRouter(map[string]Config{
			ProviderOpenAI:    {APIKey: "a"},
			ProviderAnthropic: {APIKey: "b"},
			ProviderGoogle:    {APIKey: "c"},
		})
		require.NoError(t, err)

		for _, name := range []string{ProviderOpenAI, ProviderAnthropic, ProviderGoogle} {
			adapter, err := router.Pick(name)
			require.NoError(t, err)
			assert.Equal(t, name, adapter.Name())
		}
	})

	t.Run("unknown_provider_fails_construction", func(t *testing.T) {
		_, err := NewRouter(map[string]Config{"mistral": {}})
		assert.ErrorIs(t, err, llmerrors.ErrUnknownProvider)
	})
}

func TestRouter_PickUnconfigured(t *testing.T) {
	router, err := NewRouter(map[string]Config{ProviderOpenAI: {APIKey: "a"}})
	require.NoError(t, err)

	_, err = router.Pick(ProviderAnthropic)
	assert.ErrorIs(t, err, llmerrors.ErrUnknownProvider)
}
