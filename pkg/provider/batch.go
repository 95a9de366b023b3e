package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// BatchLimit is the provider's cap on fund codes per detail request.
const BatchLimit = 20

// AllFundsDetail fetches master data for any number of fund codes by
// splitting the list into provider-sized chunks fetched by a worker
// pool. Each chunk goes through the regular cached Fetch path, so
// repeated calls reuse per-chunk cache entries. The merged result is
// degraded as soon as any chunk degraded; Source reflects the freshest
// contributing chunk (live beats cache beats fallback).
func (c *Client) AllFundsDetail(ctx context.Context, fundCodes []string) (Result, error) {
	start := time.Now()

	if len(fundCodes) == 0 {
		ProviderErrors.WithLabelValues(string(ErrorClassInvalidRequest)).Inc()
		return Result{}, invalidRequest(EndpointBatchGetFundsDetail, fmt.Errorf("fund codes are required"))
	}

	chunks := chunkCodes(fundCodes, BatchLimit)

	// Single chunk optimization
	if len(chunks) == 1 {
		return c.FundsDetail(ctx, FundsDetailRequest{FundCodes: chunks[0]})
	}

	c.logger.Info().
		Int("funds", len(fundCodes)).
		Int("chunks", len(chunks)).
		Msg("Starting batch fund detail fetch")

	type chunkResult struct {
		index  int
		result Result
		err    error
	}

	chunkQueue := make(chan int, len(chunks))
	chunkResults := make(chan chunkResult, len(chunks))

	for i := range chunks {
		chunkQueue <- i
	}
	close(chunkQueue)

	workers := c.config.MaxConcurrency
	if workers > len(chunks) {
		workers = len(chunks)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range chunkQueue {
				res, err := c.FundsDetail(ctx, FundsDetailRequest{FundCodes: chunks[i]})
				chunkResults <- chunkResult{index: i, result: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(chunkResults)
	}()

	results := make([]Result, len(chunks))
	var firstErr error
	for cr := range chunkResults {
		if cr.err != nil {
			if firstErr == nil {
				firstErr = cr.err
			}
			continue
		}
		results[cr.index] = cr.result
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	// Merge chunk payloads in input order
	merged := make([]json.RawMessage, 0, len(fundCodes))
	degraded := false
	message := ""
	anyLive := false
	anyCache := false
	var latest time.Time

	for _, res := range results {
		var items []json.RawMessage
		if err := json.Unmarshal(res.Data, &items); err != nil {
			degraded = true
			if message == "" {
				message = "unexpected chunk payload"
			}
			continue
		}
		merged = append(merged, items...)

		if res.Degraded {
			degraded = true
			if message == "" {
				message = res.Message
			}
		}
		switch res.Source {
		case SourceLive:
			anyLive = true
		case SourceCache:
			anyCache = true
		}
		if res.FetchedAt.After(latest) {
			latest = res.FetchedAt
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		data = json.RawMessage(`[]`)
		degraded = true
	}

	source := SourceFallback
	switch {
	case anyLive:
		source = SourceLive
	case anyCache:
		source = SourceCache
	}

	c.logger.Info().
		Int("funds", len(merged)).
		Int("chunks", len(chunks)).
		Bool("degraded", degraded).
		Dur("duration", time.Since(start)).
		Msg("Batch fund detail fetch complete")

	return Result{
		Data:      data,
		Degraded:  degraded,
		Source:    source,
		Endpoint:  EndpointBatchGetFundsDetail,
		FetchedAt: latest,
		Message:   message,
	}, nil
}

// chunkCodes splits codes into slices of at most size entries.
func chunkCodes(codes []string, size int) [][]string {
	chunks := make([][]string, 0, (len(codes)+size-1)/size)
	for start := 0; start < len(codes); start += size {
		end := start + size
		if end > len(codes) {
			end = len(codes)
		}
		chunks = append(chunks, codes[start:end])
	}
	return chunks
}
