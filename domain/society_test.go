package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownSociety(t *testing.T) {
	assert.True(t, KnownSociety("Choir"))
	assert.True(t, KnownSociety("Other"))
	assert.False(t, KnownSociety("Knights of the Round Table"))
	assert.False(t, KnownSociety(""))
}
