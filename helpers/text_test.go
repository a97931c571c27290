package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpace(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  Casque   Bluetooth XYZ ", "Casque Bluetooth XYZ"},
		{"deja propre", "deja propre"},
		{"avec\ttabulations\net\nsauts", "avec tabulations et sauts"},
		{"   ", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CollapseSpace(tc.input), "CollapseSpace(%q)", tc.input)
	}
}
