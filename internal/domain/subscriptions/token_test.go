package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAPIToken(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		token := GenerateAPIToken()

		assert.Len(t, token, 32)
		for _, c := range token {
			isAlnum := ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
			assert.True(t, isAlnum, "unexpected character %q in token", c)
		}

		assert.False(t, seen[token], "token generated twice")
		seen[token] = true
	}
}
