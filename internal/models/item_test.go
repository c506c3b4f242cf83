package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"9.99", true},
		{"0", true},
		{"0.00", true},
		{"100", true},
		{"12345678.99", true},
		{"0.5", true},
		{"-0.01", false},
		{"-10", false},
		{"9.999", false},
		{"0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := decimal.NewFromString(tt.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			err = ValidatePrice(p)
			if tt.valid && err != nil {
				t.Errorf("ValidatePrice(%s) = %v, want nil", tt.input, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidatePrice(%s) = nil, want error", tt.input)
			}
		})
	}
}
