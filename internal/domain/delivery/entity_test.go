// internal/domain/delivery/entity_test.go
package delivery

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusProcessed, true},
		{StatusPending, StatusProcessed, false},
		{StatusProcessing, StatusPending, false},
		{StatusProcessed, StatusProcessing, false},
		{StatusProcessed, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
