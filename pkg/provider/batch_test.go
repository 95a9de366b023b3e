package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/quantedu/fundboard/internal/testutil"
)

func TestChunkCodes(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		size     int
		expected []int
	}{
		{
			name:     "empty input",
			count:    0,
			size:     20,
			expected: []int{},
		},
		{
			name:     "below chunk size",
			count:    5,
			size:     20,
			expected: []int{5},
		},
		{
			name:     "exactly one chunk",
			count:    20,
			size:     20,
			expected: []int{20},
		},
		{
			name:     "one over",
			count:    21,
			size:     20,
			expected: []int{20, 1},
		},
		{
			name:     "several chunks",
			count:    45,
			size:     20,
			expected: []int{20, 20, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := make([]string, tt.count)
			for i := range codes {
				codes[i] = fmt.Sprintf("%06d", i)
			}

			chunks := chunkCodes(codes, tt.size)

			if len(chunks) != len(tt.expected) {
				t.Fatalf("chunk count = %d, want %d", len(chunks), len(tt.expected))
			}
			for i, chunk := range chunks {
				if len(chunk) != tt.expected[i] {
					t.Errorf("chunk %d size = %d, want %d", i, len(chunk), tt.expected[i])
				}
			}
		})
	}
}

// echoDetailHandler answers a detail request with one object per
// requested fund code.
func echoDetailHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FundCodes []string `json:"fundCodes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]map[string]string, 0, len(body.FundCodes))
	for _, code := range body.FundCodes {
		items = append(items, map[string]string{"fundCode": code})
	}
	data, _ := json.Marshal(items)

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success": true, "message": "ok", "data": %s}`, data)
}

func TestAllFundsDetail_MergesChunks(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.SetHandler(EndpointBatchGetFundsDetail, echoDetailHandler)

	client := setupTestClient(t, mock)

	codes := make([]string, 45)
	for i := range codes {
		codes[i] = fmt.Sprintf("%06d", i)
	}

	result, err := client.AllFundsDetail(context.Background(), codes)
	if err != nil {
		t.Fatalf("AllFundsDetail() error = %v", err)
	}

	if result.Degraded {
		t.Error("Degraded = true, want false when all chunks succeed")
	}
	if mock.RequestCount(EndpointBatchGetFundsDetail) != 3 {
		t.Errorf("request count = %d, want 3 chunks", mock.RequestCount(EndpointBatchGetFundsDetail))
	}

	var items []map[string]string
	if err := result.Decode(&items); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 45 {
		t.Fatalf("merged item count = %d, want 45", len(items))
	}

	// Merged output preserves the caller's order.
	for i, item := range items {
		if want := fmt.Sprintf("%06d", i); item["fundCode"] != want {
			t.Errorf("item %d fundCode = %q, want %q", i, item["fundCode"], want)
			break
		}
	}
}

func TestAllFundsDetail_SingleChunkPassthrough(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.SetHandler(EndpointBatchGetFundsDetail, echoDetailHandler)

	client := setupTestClient(t, mock)

	result, err := client.AllFundsDetail(context.Background(), []string{"000001", "000002"})
	if err != nil {
		t.Fatalf("AllFundsDetail() error = %v", err)
	}

	if mock.RequestCount(EndpointBatchGetFundsDetail) != 1 {
		t.Errorf("request count = %d, want 1", mock.RequestCount(EndpointBatchGetFundsDetail))
	}
	if result.Source != SourceLive {
		t.Errorf("Source = %v, want %v", result.Source, SourceLive)
	}
}

func TestAllFundsDetail_EmptyInput(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	client := setupTestClient(t, mock)

	_, err := client.AllFundsDetail(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error for empty fund code list")
	}
	if mock.TotalRequests() != 0 {
		t.Errorf("request count = %d, want 0", mock.TotalRequests())
	}
}

func TestAllFundsDetail_DegradedChunk(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	// The chunk containing the marker code fails; the others succeed.
	mock.SetHandler(EndpointBatchGetFundsDetail, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FundCodes []string `json:"fundCodes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if strings.Contains(strings.Join(body.FundCodes, ","), "FAIL01") {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"success": false, "message": "detail source offline", "data": null}`)
			return
		}

		items := make([]map[string]string, 0, len(body.FundCodes))
		for _, code := range body.FundCodes {
			items = append(items, map[string]string{"fundCode": code})
		}
		data, _ := json.Marshal(items)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"success": true, "message": "ok", "data": %s}`, data)
	})

	client := setupTestClient(t, mock)

	codes := make([]string, 25)
	for i := range codes {
		codes[i] = fmt.Sprintf("%06d", i)
	}
	codes[24] = "FAIL01"

	result, err := client.AllFundsDetail(context.Background(), codes)
	if err != nil {
		t.Fatalf("a failing chunk must degrade, not error; got %v", err)
	}

	if !result.Degraded {
		t.Error("Degraded = false, want true when one chunk falls back")
	}
	if result.Message != "detail source offline" {
		t.Errorf("Message = %q, want chunk failure message", result.Message)
	}

	// The healthy chunk's data survives the merge.
	var items []map[string]string
	if err := result.Decode(&items); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 20 {
		t.Errorf("merged item count = %d, want 20 from the healthy chunk", len(items))
	}
}

func TestAllFundsDetail_ChunksAreCached(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.SetHandler(EndpointBatchGetFundsDetail, echoDetailHandler)

	client := setupTestClient(t, mock)
	ctx := context.Background()

	codes := make([]string, 45)
	for i := range codes {
		codes[i] = fmt.Sprintf("%06d", i)
	}

	if _, err := client.AllFundsDetail(ctx, codes); err != nil {
		t.Fatalf("first AllFundsDetail() error = %v", err)
	}

	result, err := client.AllFundsDetail(ctx, codes)
	if err != nil {
		t.Fatalf("second AllFundsDetail() error = %v", err)
	}

	if mock.RequestCount(EndpointBatchGetFundsDetail) != 3 {
		t.Errorf("request count = %d, want 3 (repeat must be served per-chunk from cache)",
			mock.RequestCount(EndpointBatchGetFundsDetail))
	}
	if result.Source != SourceCache {
		t.Errorf("Source = %v, want %v", result.Source, SourceCache)
	}
}

func TestFundsDetail_TruncatesOversizedList(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.SetHandler(EndpointBatchGetFundsDetail, echoDetailHandler)

	client := setupTestClient(t, mock)

	codes := make([]string, 30)
	for i := range codes {
		codes[i] = fmt.Sprintf("%06d", i)
	}

	result, err := client.FundsDetail(context.Background(), FundsDetailRequest{FundCodes: codes})
	if err != nil {
		t.Fatalf("FundsDetail() error = %v", err)
	}

	// A single detail call silently truncates to the provider cap.
	var items []map[string]string
	if err := result.Decode(&items); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != BatchLimit {
		t.Errorf("item count = %d, want %d", len(items), BatchLimit)
	}
	if mock.RequestCount(EndpointBatchGetFundsDetail) != 1 {
		t.Errorf("request count = %d, want 1", mock.RequestCount(EndpointBatchGetFundsDetail))
	}
}
