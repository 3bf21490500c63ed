package repository

import (
	"errors"
	"testing"

	"github.com/eventgate/checkin/internal/model"
)

func validInput() model.NewRegistration {
	return model.NewRegistration{
		FamilyName:         "Sharma",
		PrimaryContactName: "Priya Sharma",
		Phone:              "+1 555 0100",
		Email:              "priya@example.com",
		Adults:             2,
		Kids:               1,
	}
}

func TestValidateNewRegistrationOK(t *testing.T) {
	n := validInput()
	if err := ValidateNewRegistration(&n); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestValidateNewRegistrationRequiredFields(t *testing.T) {
	cases := map[string]func(*model.NewRegistration){
		"family_name":          func(n *model.NewRegistration) { n.FamilyName = "   " },
		"primary_contact_name": func(n *model.NewRegistration) { n.PrimaryContactName = "" },
		"phone":                func(n *model.NewRegistration) { n.Phone = "\t" },
	}
	for field, blank := range cases {
		n := validInput()
		blank(&n)
		if err := ValidateNewRegistration(&n); !errors.Is(err, ErrValidation) {
			t.Errorf("missing %s: expected ErrValidation, got %v", field, err)
		}
	}
}

func TestValidateNewRegistrationTrimsAndNormalizes(t *testing.T) {
	n := validInput()
	n.FamilyName = "  Sharma  "
	n.Phone = " +1 555 0100 "
	n.Adults = -3
	n.Kids = -1
	if err := ValidateNewRegistration(&n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.FamilyName != "Sharma" {
		t.Errorf("family name not trimmed: %q", n.FamilyName)
	}
	if n.Phone != "+1 555 0100" {
		t.Errorf("phone not trimmed: %q", n.Phone)
	}
	if n.Adults != 0 || n.Kids != 0 {
		t.Errorf("negative counts not normalized: adults=%d kids=%d", n.Adults, n.Kids)
	}
}

func TestParseCapacity(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"300", 300},
		{"1", 1},
		{"0", DefaultCapacityLimit},
		{"-5", DefaultCapacityLimit},
		{"garbage", DefaultCapacityLimit},
		{"", DefaultCapacityLimit},
	}
	for _, tc := range cases {
		if got := parseCapacity(tc.raw); got != tc.want {
			t.Errorf("parseCapacity(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
