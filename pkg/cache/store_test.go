package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key{
		Endpoint: "SearchFunds",
		Params:   map[string]any{"keyword": "ABC", "page": 0, "size": 20},
	}
	entry := &Entry{
		Payload:   json.RawMessage(`[{"fundCode":"000001"}]`),
		FetchedAt: time.Now(),
		TTL:       5 * time.Minute,
	}

	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Payload) != string(entry.Payload) {
		t.Errorf("Get() payload = %s, want %s", got.Payload, entry.Payload)
	}
	if got.TTL != entry.TTL {
		t.Errorf("Get() TTL = %v, want %v", got.TTL, entry.TTL)
	}
}

func TestMemoryStore_Get_CacheMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key{Endpoint: "GetCurrentTime"}

	_, err := store.Get(ctx, key)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_Get_ExpiredEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	key := Key{
		Endpoint: "GetLatestQuotations",
		Params:   map[string]any{"calDate": "2025-06-02"},
	}
	entry := &Entry{
		Payload:   json.RawMessage(`{"sh000001":3100.5}`),
		FetchedAt: now.Add(-2 * time.Minute),
		TTL:       60 * time.Second,
	}

	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, err := store.Get(ctx, key)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss for expired entry", err)
	}

	// Lazy eviction: the stale entry stays resident after the miss.
	n, err := store.Len(ctx)
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Len() after expired read = %d, want 1", n)
	}
}

func TestMemoryStore_Get_FreshWithinTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	key := Key{Endpoint: "SearchHotTopic", Params: map[string]any{"keyword": "rates"}}
	entry := &Entry{
		Payload:   json.RawMessage(`[]`),
		FetchedAt: now.Add(-59 * time.Minute),
		TTL:       time.Hour,
	}

	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := store.Get(ctx, key); err != nil {
		t.Errorf("Get() error = %v, want hit within TTL", err)
	}
}

func TestMemoryStore_Set_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	key := Key{Endpoint: "GuessFundCode", Params: map[string]any{"fundNameOrCode": "alpha"}}

	stale := &Entry{
		Payload:   json.RawMessage(`"old"`),
		FetchedAt: now.Add(-10 * time.Minute),
		TTL:       60 * time.Second,
	}
	if err := store.Set(ctx, key, stale); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	fresh := &Entry{
		Payload:   json.RawMessage(`"new"`),
		FetchedAt: now,
		TTL:       60 * time.Second,
	}
	if err := store.Set(ctx, key, fresh); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Payload) != `"new"` {
		t.Errorf("Get() payload = %s, want %q after overwrite", got.Payload, "new")
	}

	n, _ := store.Len(ctx)
	if n != 1 {
		t.Errorf("Len() = %d, want 1 after overwrite", n)
	}
}

func TestMemoryStore_Set_NilEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key{Endpoint: "SearchFunds"}

	if err := store.Set(ctx, key, nil); err == nil {
		t.Error("Set() with nil entry should return error")
	}
}

func TestMemoryStore_Set_CopiesEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	key := Key{Endpoint: "GetFundDiagnosis", Params: map[string]any{"fundNameOrCode": "000001"}}
	entry := &Entry{
		Payload:   json.RawMessage(`{}`),
		FetchedAt: time.Now(),
		TTL:       time.Minute,
	}

	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Mutating the caller's entry must not reach the store.
	entry.TTL = 0

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TTL != time.Minute {
		t.Errorf("stored TTL = %v, want %v", got.TTL, time.Minute)
	}
}

func TestMemoryStore_Flush(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		key := Key{Endpoint: "SearchFunds", Params: map[string]any{"page": i}}
		entry := &Entry{
			Payload:   json.RawMessage(`[]`),
			FetchedAt: time.Now(),
			TTL:       time.Minute,
		}
		if err := store.Set(ctx, key, entry); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	n, _ := store.Len(ctx)
	if n != 5 {
		t.Fatalf("Len() = %d, want 5", n)
	}

	if err := store.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	n, _ = store.Len(ctx)
	if n != 0 {
		t.Errorf("Len() after Flush = %d, want 0", n)
	}
}

// TestMemoryStore_Concurrent exercises parallel readers and writers on
// overlapping keys. Meant to run under -race.
func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				key := Key{Endpoint: "SearchFunds", Params: map[string]any{"page": j % 5}}
				entry := &Entry{
					Payload:   json.RawMessage(fmt.Sprintf(`[%d]`, i)),
					FetchedAt: time.Now(),
					TTL:       time.Minute,
				}
				if err := store.Set(ctx, key, entry); err != nil {
					t.Errorf("Set() error = %v", err)
					return
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				key := Key{Endpoint: "SearchFunds", Params: map[string]any{"page": j % 5}}
				if _, err := store.Get(ctx, key); err != nil && !errors.Is(err, ErrCacheMiss) {
					t.Errorf("Get() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPolicy_For(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		class  Class
		want   time.Duration
	}{
		{
			name:   "quote class",
			policy: DefaultPolicy(),
			class:  ClassQuote,
			want:   60 * time.Second,
		},
		{
			name:   "topic class",
			policy: DefaultPolicy(),
			class:  ClassTopic,
			want:   time.Hour,
		},
		{
			name:   "static class",
			policy: DefaultPolicy(),
			class:  ClassStatic,
			want:   30 * time.Minute,
		},
		{
			name:   "default class",
			policy: DefaultPolicy(),
			class:  ClassDefault,
			want:   5 * time.Minute,
		},
		{
			name:   "unknown class falls back to default",
			policy: DefaultPolicy(),
			class:  Class("bogus"),
			want:   5 * time.Minute,
		},
		{
			name:   "zero duration falls back to default",
			policy: Policy{Default: 2 * time.Minute},
			class:  ClassQuote,
			want:   2 * time.Minute,
		},
		{
			name:   "fully zero policy falls back to built-in default",
			policy: Policy{},
			class:  ClassQuote,
			want:   DefaultDefaultTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.For(tt.class); got != tt.want {
				t.Errorf("Policy.For(%q) = %v, want %v", tt.class, got, tt.want)
			}
		})
	}
}
