package metrics

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestCollector_Connections(t *testing.T) {
	c := New()

	c.ConnectionOpened()
	c.ConnectionOpened()
	if c.ActiveConnections() != 2 {
		t.Errorf("active = %d, want 2", c.ActiveConnections())
	}
	if c.TotalConnections() != 2 {
		t.Errorf("total = %d, want 2", c.TotalConnections())
	}

	c.ConnectionClosed()
	if c.ActiveConnections() != 1 {
		t.Errorf("active = %d, want 1", c.ActiveConnections())
	}
	if c.TotalConnections() != 2 {
		t.Errorf("total should remain 2, got %d", c.TotalConnections())
	}
}

func TestCollector_Bytes(t *testing.T) {
	c := New()

	c.BytesReceived(1024)
	c.BytesSent(512)
	c.BytesReceived(100)

	if c.TotalBytesIn() != 1124 {
		t.Errorf("bytes in = %d, want 1124", c.TotalBytesIn())
	}
	if c.TotalBytesOut() != 512 {
		t.Errorf("bytes out = %d, want 512", c.TotalBytesOut())
	}
}

func TestCollector_Broadcasts(t *testing.T) {
	c := New()

	c.BroadcastStarted()
	c.DeliverySucceeded()
	c.DeliverySucceeded()
	c.BusySkip()

	if c.Broadcasts() != 1 {
		t.Errorf("broadcasts = %d, want 1", c.Broadcasts())
	}
	if c.Deliveries() != 2 {
		t.Errorf("deliveries = %d, want 2", c.Deliveries())
	}
	if c.BusySkips() != 1 {
		t.Errorf("busy skips = %d, want 1", c.BusySkips())
	}
}

func TestCollector_Errors(t *testing.T) {
	c := New()

	c.RecordError("first error")
	c.RecordError("second error")

	if c.ErrorCount() != 2 {
		t.Errorf("errors = %d, want 2", c.ErrorCount())
	}

	s := c.Snapshot()
	if s.LastErrorMessage != "second error" {
		t.Errorf("last error = %q, want %q", s.LastErrorMessage, "second error")
	}
	if s.LastError == "" {
		t.Error("last error timestamp should be set")
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.ConnectionOpened()
	c.ConnectionClosed()
	c.BytesReceived(10)
	c.BytesSent(10)
	c.BroadcastStarted()
	c.DeliverySucceeded()
	c.BusySkip()
	c.RecordError("x")

	if c.ActiveConnections() != 0 || c.ErrorCount() != 0 {
		t.Error("nil collector should report zeros")
	}
	if s := c.Snapshot(); s.ConnectionsTotal != 0 {
		t.Error("nil collector snapshot should be zero")
	}
}

func TestCollector_JSON(t *testing.T) {
	c := New()
	c.ConnectionOpened()
	c.BroadcastStarted()

	var s Snapshot
	if err := json.Unmarshal([]byte(c.JSON()), &s); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if s.ConnectionsActive != 1 {
		t.Errorf("connections_active = %d, want 1", s.ConnectionsActive)
	}
	if s.Broadcasts != 1 {
		t.Errorf("broadcasts = %d, want 1", s.Broadcasts)
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.ConnectionOpened()
				c.BytesReceived(1)
				c.DeliverySucceeded()
				c.ConnectionClosed()
			}
		}()
	}
	wg.Wait()

	if c.TotalConnections() != 1000 {
		t.Errorf("total = %d, want 1000", c.TotalConnections())
	}
	if c.ActiveConnections() != 0 {
		t.Errorf("active = %d, want 0", c.ActiveConnections())
	}
	if c.TotalBytesIn() != 1000 {
		t.Errorf("bytes in = %d, want 1000", c.TotalBytesIn())
	}
}
