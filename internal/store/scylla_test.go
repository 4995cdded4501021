package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageBounds(t *testing.T) {
	cases := []struct {
		name     string
		total    int
		page     int
		pageSize int
		lo, hi   int
	}{
		{"première page", 10, 1, 3, 0, 3},
		{"page du milieu", 10, 2, 3, 3, 6},
		{"dernière page partielle", 10, 4, 3, 9, 10},
		{"au-delà de la fin", 10, 5, 3, 10, 10},
		{"vide", 0, 1, 3, 0, 0},
		{"page zéro traitée comme première", 10, 0, 3, 0, 3},
		{"page plus grande que le total", 2, 1, 40, 0, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := pageBounds(tc.total, tc.page, tc.pageSize)
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.hi, hi)
		})
	}
}
