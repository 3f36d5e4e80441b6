package game

import (
	"errors"
	"testing"
)

func TestBusinessCostTable(t *testing.T) {
	want := map[uint8]uint64{
		0:  500,
		1:  1000,
		2:  2500,
		3:  5000,
		4:  10000,
		5:  20000,
		6:  50000,
		7:  100000,
		8:  250000,
		9:  500000,
		10: 1000000,
		11: 2000000,
		12: 3000000,
		13: 5000000,
		14: 7500000,
		15: 10000000,
		16: 15000000,
		17: 20000000,
		18: 30000000,
		19: 50000000,
	}
	var prev uint64
	for id := uint8(0); id < BusinessCount; id++ {
		cost, err := BusinessCost(id)
		if err != nil {
			t.Fatalf("id %d: %v", id, err)
		}
		if cost != want[id] {
			t.Fatalf("id %d: cost %d want %d", id, cost, want[id])
		}
		if cost <= prev {
			t.Fatalf("costs must be strictly increasing, id %d: %d <= %d", id, cost, prev)
		}
		prev = cost
	}
	if _, err := BusinessCost(20); !errors.Is(err, ErrInvalidBusinessID) {
		t.Fatalf("id 20 should be invalid, got %v", err)
	}
}

func TestPurchaseBusiness(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.Credits = 2000

	cost, err := PurchaseBusiness(ps, 0)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if cost != 500 || ps.Credits != 1500 {
		t.Fatalf("cost/credits wrong: cost=%d credits=%d", cost, ps.Credits)
	}
	if len(ps.BusinessesOwned) != 1 || ps.BusinessesOwned[0] != 0 {
		t.Fatalf("owned list wrong: %v", ps.BusinessesOwned)
	}
	// Novice capacity is 1, so the first purchase auto-activates.
	if len(ps.ActiveBusinessSlots) != 1 || ps.ActiveBusinessSlots[0] != 0 {
		t.Fatalf("auto-assignment wrong: %v", ps.ActiveBusinessSlots)
	}

	if _, err := PurchaseBusiness(ps, 0); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("re-purchase should fail with ErrAlreadyOwned, got %v", err)
	}
}

func TestPurchaseBusinessSlotCapacityBestEffort(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.Credits = 10_000

	if _, err := PurchaseBusiness(ps, 0); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	// Capacity full at level 0: the second purchase succeeds but is not
	// auto-activated, and that is not an error.
	if _, err := PurchaseBusiness(ps, 1); err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if len(ps.BusinessesOwned) != 2 {
		t.Fatalf("owned list: %v", ps.BusinessesOwned)
	}
	if len(ps.ActiveBusinessSlots) != 1 {
		t.Fatalf("slots should stay at capacity: %v", ps.ActiveBusinessSlots)
	}
}

func TestPurchaseBusinessInsufficientCredits(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.Credits = 499

	if _, err := PurchaseBusiness(ps, 0); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	// A rejected purchase must not touch the lists or the balance.
	if ps.Credits != 499 || len(ps.BusinessesOwned) != 0 || len(ps.ActiveBusinessSlots) != 0 {
		t.Fatalf("rejected purchase mutated state: %+v", ps)
	}
}

func TestPurchaseBusinessInvalidID(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.Credits = 100_000_000
	if _, err := PurchaseBusiness(ps, 20); !errors.Is(err, ErrInvalidBusinessID) {
		t.Fatalf("expected ErrInvalidBusinessID, got %v", err)
	}
}

func TestMaxSlotsByLevel(t *testing.T) {
	want := []int{1, 2, 3, 4, 5}
	for level := uint8(0); level <= 4; level++ {
		if got := MaxSlots(level); got != want[level] {
			t.Fatalf("level %d: slots %d want %d", level, got, want[level])
		}
	}
}

func TestSetActiveSlots(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.Credits = 50_000
	ps.WorkFrequencyLevel = 2 // capacity 3
	for _, id := range []uint8{0, 1, 2, 3} {
		if _, err := PurchaseBusiness(ps, id); err != nil {
			t.Fatalf("purchase %d: %v", id, err)
		}
	}

	if err := SetActiveSlots(ps, []uint8{3, 1}); err != nil {
		t.Fatalf("set slots: %v", err)
	}
	if len(ps.ActiveBusinessSlots) != 2 || ps.ActiveBusinessSlots[0] != 3 {
		t.Fatalf("slots wrong: %v", ps.ActiveBusinessSlots)
	}

	if err := SetActiveSlots(ps, []uint8{0, 1, 2, 3}); !errors.Is(err, ErrMaxSlotsReached) {
		t.Fatalf("over capacity should fail, got %v", err)
	}
	if err := SetActiveSlots(ps, []uint8{5}); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("non-owned id should fail, got %v", err)
	}
	if err := SetActiveSlots(ps, []uint8{1, 1}); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("duplicate ids should fail, got %v", err)
	}
	// Rejections leave the active list untouched.
	if len(ps.ActiveBusinessSlots) != 2 {
		t.Fatalf("rejected update mutated slots: %v", ps.ActiveBusinessSlots)
	}
}
