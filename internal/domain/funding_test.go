package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name          string
		from, to      FundingStatus
		adminApproved bool
		want          bool
	}{
		{"pending to approved", FundingPending, FundingApproved, false, true},
		{"pending to rejected", FundingPending, FundingRejected, false, true},
		{"pending to funded", FundingPending, FundingFunded, true, false},
		{"approved to funded with admin flag", FundingApproved, FundingFunded, true, true},
		{"approved to funded without admin flag", FundingApproved, FundingFunded, false, false},
		{"approved to rejected", FundingApproved, FundingRejected, false, false},
		{"rejected to pending", FundingRejected, FundingPending, false, false},
		{"rejected to approved", FundingRejected, FundingApproved, true, false},
		{"funded to approved", FundingFunded, FundingApproved, true, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to, tc.adminApproved); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFundingStatusValid(t *testing.T) {
	for _, s := range []FundingStatus{FundingPending, FundingApproved, FundingRejected, FundingFunded} {
		if !s.Valid() {
			t.Errorf("expected %q valid", s)
		}
	}
	if FundingStatus("archived").Valid() {
		t.Error("expected unknown status invalid")
	}
}
