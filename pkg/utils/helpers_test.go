package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalizeFirstLetter(t *testing.T) {
	assert.Equal(t, "Tom", CapitalizeFirstLetter("tom"))
	assert.Equal(t, "Tom", CapitalizeFirstLetter("Tom"))
	assert.Equal(t, "Анна", CapitalizeFirstLetter("анна"))
	assert.Equal(t, "", CapitalizeFirstLetter(""))
	// Остальная часть строки не трогается.
	assert.Equal(t, "McDonald", CapitalizeFirstLetter("mcDonald"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "tom@gmail.com", NormalizeEmail("  Tom@GMail.com "))
}
