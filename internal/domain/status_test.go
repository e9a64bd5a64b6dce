package domain

import "testing"

func TestPipelineOrder(t *testing.T) {
	want := []OrderStatus{
		StatusArrivedOrigin,
		StatusDepartedOrigin,
		StatusArrivedDestination,
		StatusCollected,
	}
	got := Pipeline()
	if len(got) != len(want) {
		t.Fatalf("pipeline has %d stages, want %d", len(got), len(want))
	}
	for i, s := range want {
		if got[i] != s {
			t.Errorf("pipeline[%d] = %s, want %s", i, got[i], s)
		}
		if s.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", s, s.Index(), i)
		}
	}
}

func TestIndexUnknownStatus(t *testing.T) {
	if got := OrderStatus("SHIPPED").Index(); got != -1 {
		t.Fatalf("unknown status index = %d, want -1", got)
	}
	if OrderStatus("").IsValid() {
		t.Fatal("empty status should not be valid")
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		from, want OrderStatus
	}{
		{StatusArrivedOrigin, StatusDepartedOrigin},
		{StatusDepartedOrigin, StatusArrivedDestination},
		{StatusArrivedDestination, StatusCollected},
		{StatusCollected, StatusCollected}, // terminal is idempotent
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("Next(%s) = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestNextUnknownIsUnchanged(t *testing.T) {
	bogus := OrderStatus("DELIVERED")
	if got := bogus.Next(); got != bogus {
		t.Fatalf("Next on unknown status = %s, want unchanged", got)
	}
}

func TestRollbackAndForward(t *testing.T) {
	if !StatusDepartedOrigin.IsRollbackTo(StatusArrivedOrigin) {
		t.Error("DEPARTED_ORIGIN -> ARRIVED_ORIGIN should be a rollback")
	}
	if StatusArrivedOrigin.IsRollbackTo(StatusDepartedOrigin) {
		t.Error("ARRIVED_ORIGIN -> DEPARTED_ORIGIN should not be a rollback")
	}
	if StatusCollected.IsRollbackTo(OrderStatus("bogus")) {
		t.Error("rollback against an unknown status must be false")
	}
	if !StatusArrivedOrigin.IsForwardOrEqualTo(StatusArrivedOrigin) {
		t.Error("same status should count as forward-or-equal")
	}
	if !StatusArrivedOrigin.IsForwardOrEqualTo(StatusCollected) {
		t.Error("skipping forward should count as forward-or-equal")
	}
	if StatusCollected.IsForwardOrEqualTo(StatusArrivedOrigin) {
		t.Error("backward should not count as forward-or-equal")
	}
}
