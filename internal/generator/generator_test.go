package generator

import (
	"context"
	"strings"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{
			name: "valid config request",
			req:  Request{Device: "DC1-SPINE1", GenerateDeviceConfig: true},
		},
		{
			name: "missing device",
			req:  Request{GenerateDeviceConfig: true},
			msg:  "device is required",
		},
		{
			name: "nothing to generate",
			req:  Request{Device: "DC1-SPINE1"},
			msg:  "nothing to generate",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.msg == "" {
				if err != nil {
					t.Fatalf("expected request to validate, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected error containing %q, got %v", tc.msg, err)
			}
		})
	}
}

func TestCommandRequiresBinary(t *testing.T) {
	cmd := Command{}
	err := cmd.Generate(context.Background(), Request{Device: "DC1-SPINE1", GenerateDeviceConfig: true})
	if err == nil || !strings.Contains(err.Error(), "binary is required") {
		t.Fatalf("expected binary error, got %v", err)
	}
}
