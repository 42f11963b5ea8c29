package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  visita domiciliaria ", "visita domiciliaria"},
		{"<script>alert(1)</script>seguimiento", "seguimiento"},
		{"<b>urgente</b>", "urgente"},
		{"O'Higgins & Cía", "O'Higgins & Cía"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeText(tt.input), tt.input)
	}
}
