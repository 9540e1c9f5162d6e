package ws

import (
	"encoding/json"
	"testing"
	"time"

	"crm-console/internal/model"
)

func TestNotify_QueuesEncodedEvent(t *testing.T) {
	hub := NewHub()
	hub.Notify(model.NewChangeEvent("leads", model.ChangeDeleted, "7", "u1"))

	select {
	case payload := <-hub.Broadcast:
		var got map[string]interface{}
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("payload is not JSON: %v", err)
		}
		if got["type"] != "record_changed" || got["resource"] != "leads" || got["action"] != "deleted" || got["record_id"] != "7" {
			t.Errorf("payload = %s", payload)
		}
		if got["id"] == "" {
			t.Error("event id missing")
		}
	default:
		t.Fatal("event was not queued")
	}
}

func TestNotify_DropsWhenFull(t *testing.T) {
	hub := NewHub()
	for i := 0; i < broadcastBuffer+5; i++ {
		hub.Notify(model.NewChangeEvent("leads", model.ChangeUpdated, "1", ""))
	}
	if len(hub.Broadcast) != broadcastBuffer {
		t.Errorf("queued = %d, want %d", len(hub.Broadcast), broadcastBuffer)
	}
}

func TestStop_EndsRun(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()
	hub.Stop()
	<-done
	if hub.Count() != 0 {
		t.Errorf("clients = %d after stop", hub.Count())
	}
}

func TestStop_ReleasesServe(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	done := make(chan bool)
	go func() {
		registered := hub.register(nil)
		hub.unregister(nil)
		done <- registered
	}()

	select {
	case registered := <-done:
		if registered {
			t.Error("register succeeded on a stopped hub")
		}
	case <-time.After(time.Second):
		t.Fatal("register or unregister blocked after stop")
	}
}
