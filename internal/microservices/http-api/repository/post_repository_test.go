package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%go%", containsPattern("go"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%snake\_case%`, containsPattern("snake_case"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
