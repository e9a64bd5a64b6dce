package session

import (
	"testing"
	"time"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Put(&domain.Order{ID: "1", TrackingCode: "A", Status: domain.StatusArrivedOrigin})

	got, _ := s.Get("1")
	got.Status = domain.StatusCollected

	again, _ := s.Get("1")
	if again.Status != domain.StatusArrivedOrigin {
		t.Fatal("mutating a returned order leaked into the store")
	}
}

func TestStoreReplaceSwapsIDs(t *testing.T) {
	s := NewStore()
	staged := &domain.Order{ID: domain.NewStagedID(), TrackingCode: "A"}
	s.Put(staged)

	s.Replace(staged.ID, &domain.Order{ID: "backend-1", TrackingCode: "A"})
	if _, ok := s.Get(staged.ID); ok {
		t.Error("old id still present")
	}
	if _, ok := s.Get("backend-1"); !ok {
		t.Error("new id missing")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestStoreListIsSorted(t *testing.T) {
	s := NewStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Put(&domain.Order{ID: "b", CreatedAt: base.Add(time.Hour)})
	s.Put(&domain.Order{ID: "a", CreatedAt: base})
	s.Put(&domain.Order{ID: "c", CreatedAt: base.Add(time.Hour)})

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].ID != "a" || list[1].ID != "b" || list[2].ID != "c" {
		t.Fatalf("order = %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestStoreGetByTracking(t *testing.T) {
	s := NewStore()
	s.Put(&domain.Order{ID: "1", TrackingCode: "MSK42"})
	if _, ok := s.GetByTracking("MSK42"); !ok {
		t.Error("tracking lookup missed")
	}
	if _, ok := s.GetByTracking("NOPE"); ok {
		t.Error("tracking lookup false hit")
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Put(&domain.Order{ID: "1"})
	s.Reset()
	if s.Len() != 0 {
		t.Fatal("reset left orders behind")
	}
}
