package entity

import "testing"

func TestOrderStatusNormalize(t *testing.T) {
	if got := OrderStatus("").Normalize(); got != StatusPending {
		t.Errorf("expected empty status to normalize to pending, got %s", got)
	}
	if got := StatusShipping.Normalize(); got != StatusShipping {
		t.Errorf("expected shipping to stay shipping, got %s", got)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusShipping, StatusDelivered} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []OrderStatus{"", "cancelled", "Pending"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending ships", StatusPending, StatusShipping, true},
		{"pending delivers directly", StatusPending, StatusDelivered, true},
		{"shipping delivers", StatusShipping, StatusDelivered, true},
		{"shipping cannot revert", StatusShipping, StatusPending, false},
		{"delivered is terminal", StatusDelivered, StatusShipping, false},
		{"same status allowed", StatusShipping, StatusShipping, true},
		{"empty status acts as pending", "", StatusShipping, true},
		{"unknown target rejected", StatusPending, "cancelled", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
