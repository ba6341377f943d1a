package subscriptions

import "crypto/rand"

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const tokenLength = 32

// GenerateAPIToken returns a fresh 32-character alphanumeric token for the
// storefront plugin to authenticate against the portal.
func GenerateAPIToken() string {
	buf := make([]byte, tokenLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf)
}
