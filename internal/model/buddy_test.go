package model

import "testing"

func TestRespondBuddyRequest_Validate(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{"APPROVED", true},
		{"REJECTED", true},
		{"PENDING", false},
		{"approved", false},
		{"", false},
		{"CANCELLED", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			request := RespondBuddyRequest{Status: tt.status}
			errors := request.Validate()

			if tt.valid && len(errors) != 0 {
				t.Errorf("status %q should be valid, got %v", tt.status, errors)
			}
			if !tt.valid && errors["status"] != "status must be APPROVED or REJECTED" {
				t.Errorf("status %q should be rejected, got %v", tt.status, errors)
			}
		})
	}
}
