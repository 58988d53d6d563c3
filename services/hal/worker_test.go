// services/hal/worker_test.go
package hal

import (
	"context"
	"testing"
	"time"
)

// fakeAdaptor implements the generic Adaptor interface.
// It returns ErrNotReady for the first `collectsTill` Collect() calls, then succeeds.
type fakeAdaptor struct {
	id           string
	after        time.Duration
	collectsTill int // number of ErrNotReady before success
	triggers     int
	collects     int
}

func (f *fakeAdaptor) ID() string              { return f.id }
func (f *fakeAdaptor) Capabilities() []CapInfo { return nil }
func (f *fakeAdaptor) Trigger(ctx context.Context) (time.Duration, error) {
	f.triggers++
	return f.after, nil
}
func (f *fakeAdaptor) Collect(ctx context.Context) (Sample, error) {
	f.collects++
	if f.collects <= f.collectsTill {
		return nil, ErrNotReady
	}
	ts := time.Now().UnixMilli()
	return Sample{
		{Kind: "temperature", Payload: map[string]any{"centi_c": 2508, "ts_ms": ts}, TsMs: ts},
		{Kind: "pressure", Payload: map[string]any{"pa_q24_8": 100656, "ts_ms": ts}, TsMs: ts},
	}, nil
}
func (f *fakeAdaptor) Control(kind, method string, payload any) (any, error) {
	return nil, ErrUnsupported
}

func findReadingPayload(t *testing.T, s Sample, kind string) map[string]any {
	t.Helper()
	for _, rd := range s {
		if rd.Kind == kind {
			m, ok := rd.Payload.(map[string]any)
			if !ok {
				t.Fatalf("%s payload type: %T", kind, rd.Payload)
			}
			return m
		}
	}
	t.Fatalf("no %s reading in sample", kind)
	return nil
}

func gi(m map[string]any, key string) int {
	switch x := m[key].(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	default:
		return -1
	}
}

func TestWorker_SuccessWithRetries(t *testing.T) {
	cfg := WorkerConfig{
		TriggerTimeout: 50 * time.Millisecond,
		CollectTimeout: 50 * time.Millisecond,
		RetryBackoff:   2 * time.Millisecond,
		MaxRetries:     5,
	}
	w := NewWorker(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	ad := &fakeAdaptor{id: "bmp0", after: 1 * time.Millisecond, collectsTill: 2}
	if ok := w.Submit(MeasureReq{ID: ad.id, Adaptor: ad}); !ok {
		t.Fatal("submit failed")
	}

	select {
	case r := <-w.Results():
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		temp := findReadingPayload(t, r.Sample, "temperature")
		press := findReadingPayload(t, r.Sample, "pressure")
		if gi(temp, "centi_c") != 2508 || gi(press, "pa_q24_8") != 100656 {
			t.Fatalf("bad data: temp=%v press=%v", temp, press)
		}
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for result")
	}
}

func TestWorker_RetryLimitFailure(t *testing.T) {
	cfg := WorkerConfig{RetryBackoff: 1 * time.Millisecond, MaxRetries: 2}
	w := NewWorker(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	ad := &fakeAdaptor{id: "bmp1", after: 1 * time.Millisecond, collectsTill: 10}
	if ok := w.Submit(MeasureReq{ID: ad.id, Adaptor: ad}); !ok {
		t.Fatal("submit failed")
	}

	select {
	case r := <-w.Results():
		if r.Err == nil {
			t.Fatal("expected error after exhausting retries, got nil")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for failure result")
	}
}

func TestWorker_CoalescesPendingRequests(t *testing.T) {
	cfg := WorkerConfig{RetryBackoff: 1 * time.Millisecond, MaxRetries: 5}
	w := NewWorker(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	ad := &fakeAdaptor{id: "bmp2", after: 20 * time.Millisecond, collectsTill: 0}
	if ok := w.Submit(MeasureReq{ID: ad.id, Adaptor: ad}); !ok {
		t.Fatal("submit failed")
	}
	// Duplicate while pending: must coalesce, not trigger twice.
	_ = w.Submit(MeasureReq{ID: ad.id, Adaptor: ad})

	select {
	case r := <-w.Results():
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for result")
	}

	if ad.triggers != 1 {
		t.Fatalf("triggers = %d, want 1 (coalesced)", ad.triggers)
	}

	select {
	case r := <-w.Results():
		t.Fatalf("unexpected second result: %+v", r)
	case <-time.After(30 * time.Millisecond):
	}
}
