package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"orderID", "orderid"},
		{"order_id", "orderid"},
		{"Order-Id", "orderid"},
		{"XMLParser", "xmlparser"},
		{"$version", "version"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestNormalizeIdentStripped(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"createdAt", "created"},
		{"customerID", "customer"},
		{"userIds", "user"},
		{"id", "id"},
		{"timestamp", "timestamp"},
		{"email", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdentStripped(tt.input))
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"get", "http", "response"}, TokenizeIdent("getHTTPResponse"))
	assert.Equal(t, []string{"order", "id"}, TokenizeIdent("order_id"))
	assert.Nil(t, TokenizeIdent(""))
}
