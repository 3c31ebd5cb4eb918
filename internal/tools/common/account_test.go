package common

import (
	"testing"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{name: "explicit account", args: map[string]interface{}{"account": "front-desk"}, expected: "front-desk"},
		{name: "empty account", args: map[string]interface{}{"account": ""}, expected: "default"},
		{name: "missing account", args: map[string]interface{}{}, expected: "default"},
		{name: "wrong type", args: map[string]interface{}{"account": 42}, expected: "default"},
		{name: "nil args", args: nil, expected: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAccountFromArgs(t.Context(), tt.args); got != tt.expected {
				t.Errorf("GetAccountFromArgs() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
