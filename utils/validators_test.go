package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@x.com"))
	assert.True(t, IsValidEmail("first.last+tag@example.co.uk"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("bob"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret1"))
	assert.False(t, IsValidPassword("short"))
}

func TestParsePrice(t *testing.T) {
	price, ok := ParsePrice("45.99")
	assert.True(t, ok)
	assert.Equal(t, 45.99, price)

	price, ok = ParsePrice("0")
	assert.True(t, ok)
	assert.Equal(t, 0.0, price)

	// Prices must be non-negative
	_, ok = ParsePrice("-5")
	assert.False(t, ok)

	_, ok = ParsePrice("")
	assert.False(t, ok)

	_, ok = ParsePrice("abc")
	assert.False(t, ok)
}
