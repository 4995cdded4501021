package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Perceuse sans fil", "perceuse-sans-fil"},
		{"  Marteau  ", "marteau"},
		{"Café & Thé", "cafe-and-the"},
		{"Vis à bois 4×40", "vis-a-bois-4x40"},
		{"UPPERCASE", "uppercase"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveSlug(tc.name), tc.name)
	}
}

func TestDeriveSlugStable(t *testing.T) {
	// Même nom, même slug : la dérivation est une fonction pure.
	assert.Equal(t, DeriveSlug("Pince multiprise"), DeriveSlug("Pince multiprise"))
}
