package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("accepts every supported network", func(t *testing.T) {
		for _, raw := range []string{"eth", "bnb", "xlm"} {
			chain, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, chain.String())
		}
	})

	t.Run("rejects unknown networks", func(t *testing.T) {
		_, err := Parse("doge")
		assert.ErrorContains(t, err, "unknown chain")
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := Parse("ETH")
		assert.Error(t, err)
	})
}

func TestPushChains(t *testing.T) {
	pushed := PushChains()

	assert.ElementsMatch(t, []Chain{Ethereum, BNB}, pushed)
	assert.NotContains(t, pushed, Stellar)
}
