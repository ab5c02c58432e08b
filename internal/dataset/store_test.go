package dataset

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/medlux/wardgrid/internal/grid"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	data := grid.Dataset{{"id": "1", "name": "Carlos"}, {"id": "2", "name": "Emma"}}

	before := time.Now()
	s.Update("patients", data, nil)

	snap, ok := s.Snapshot("patients")
	if !ok || !snap.HasData {
		t.Fatalf("Snapshot ok=%v HasData=%v, want both true", ok, snap.HasData)
	}
	if len(snap.Data) != 2 || snap.Data[0].Field("name") != "Carlos" {
		t.Fatalf("snapshot data = %#v, want 2 records", snap.Data)
	}
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Neither the caller's dataset nor a returned snapshot alias the store.
	data[0]["name"] = "changed"
	snap.Data[1]["name"] = "changed"
	snap2, _ := s.Snapshot("patients")
	if snap2.Data[0].Field("name") != "Carlos" || snap2.Data[1].Field("name") != "Emma" {
		t.Fatalf("Snapshot should clone data; got %#v", snap2.Data)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update("tickets", grid.Dataset{{"id": "T-1"}}, nil)
	prev, _ := s.Snapshot("tickets")

	before := time.Now()
	origErr := errors.New("boom")
	s.Update("tickets", nil, origErr)

	snap, _ := s.Snapshot("tickets")
	if len(snap.Data) != 1 || snap.Data[0].Field("id") != "T-1" {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Data, prev.Data)
	}
	if snap.Generation != prev.Generation {
		t.Fatalf("Generation = %d, want %d", snap.Generation, prev.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the recorded error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap, ok := s.Snapshot("staff")
	if ok || snap.ConsecutiveFailures != 0 || snap.IsStale() {
		t.Fatalf("empty store snapshot = %+v ok=%v", snap, ok)
	}

	for i := 1; i <= 3; i++ {
		s.Update("staff", nil, errors.New("fail"))
		snap, _ = s.Snapshot("staff")
		if snap.ConsecutiveFailures != i {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i)
		}
		if want := i >= 2; snap.IsStale() != want {
			t.Fatalf("IsStale() = %v, want %v with %d failures", snap.IsStale(), want, i)
		}
		if snap.HasData {
			t.Fatalf("HasData = true after only failures")
		}
	}

	s.Update("staff", grid.Dataset{}, nil)
	snap, _ = s.Snapshot("staff")
	if snap.ConsecutiveFailures != 0 || snap.IsStale() || !snap.HasData {
		t.Fatalf("after success snapshot = %+v", snap)
	}
}

func TestStore_NamesAndGeneration(t *testing.T) {
	var s Store
	s.Update("tickets", grid.Dataset{}, nil)
	s.Update("patients", grid.Dataset{}, nil)
	s.Update("patients", grid.Dataset{{"id": "1"}}, nil)

	if got := s.Names(); !reflect.DeepEqual(got, []string{"patients", "tickets"}) {
		t.Fatalf("Names = %v", got)
	}
	if got := s.Generation("patients"); got != 2 {
		t.Fatalf("Generation(patients) = %d, want 2", got)
	}
	if got := s.Generation("nope"); got != 0 {
		t.Fatalf("Generation(nope) = %d, want 0", got)
	}
}

func TestStore_UnchangedDataKeepsGeneration(t *testing.T) {
	var s Store
	s.Update("roster", grid.Dataset{{"id": "1", "status": "on shift"}}, nil)
	s.Update("roster", nil, errors.New("timeout"))
	s.Update("roster", grid.Dataset{{"id": "1", "status": "on shift"}}, nil)

	snap, _ := s.Snapshot("roster")
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("failure state not cleared: %+v", snap)
	}

	s.Update("roster", grid.Dataset{{"id": "1", "status": "break"}}, nil)
	if got := s.Generation("roster"); got != 2 {
		t.Fatalf("Generation after change = %d, want 2", got)
	}
}

func TestStore_StatusOmitsData(t *testing.T) {
	var s Store
	if _, ok := s.Status("care"); ok {
		t.Fatal("Status on empty store reported ok")
	}
	s.Update("care", grid.Dataset{{"id": "1"}}, nil)
	s.Update("care", nil, errors.New("locked"))

	snap, ok := s.Status("care")
	if !ok || !snap.HasData || snap.Data != nil {
		t.Fatalf("Status = %+v, ok=%v", snap, ok)
	}
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("Status lost failure state: %+v", snap)
	}
}
