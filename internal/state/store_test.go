package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sensing-garden/trellis/internal/garden"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	data := &Data{
		Classifications: []garden.Classification{{DeviceID: "device-1", Species: "Rosa canina"}},
		Devices:         []garden.Device{{DeviceID: "device-1"}},
		Counts:          Counts{Classifications: 7, Devices: 1},
	}

	before := time.Now()
	s.Update(data, nil)

	snap := s.Snapshot()
	if !snap.HasData {
		t.Fatal("HasData = false, want true after successful update")
	}
	if len(snap.Classifications) != 1 || snap.Classifications[0].Species != "Rosa canina" {
		t.Fatalf("classifications = %#v, want 1 item", snap.Classifications)
	}
	if snap.Counts.Classifications != 7 {
		t.Fatalf("counts = %#v, want classifications=7", snap.Counts)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Classifications[0].DeviceID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Classifications[0].DeviceID != "device-1" {
		t.Fatalf("Snapshot should clone slices; got %q want device-1", snap2.Classifications[0].DeviceID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&Data{Devices: []garden.Device{{DeviceID: "device-1"}}}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Devices, prev.Devices) {
		t.Fatalf("devices changed on error: got %#v want %#v", snap.Devices, prev.Devices)
	}
	if !snap.HasData {
		t.Fatal("HasData = false, want previous data retained on error")
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailuresAndOffline(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one failure: failures=%d offline=%v, want 1/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after two failures: failures=%d offline=%v, want 2/true", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(&Data{}, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
