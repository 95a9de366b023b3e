// Package provider implements the fund data gateway client with
// response caching and fail-open degradation.
//
// Every fetch runs the same pipeline:
//
//  1. Validate the request. Structurally invalid requests return a
//     hard error before any cache or network work.
//  2. Check the response cache under the request fingerprint. A fresh
//     entry is returned without a network call.
//  3. POST the parameters to baseURL/endpoint with the apiKey header,
//     bounded by the configured timeout. There is no retry.
//  4. On success, unconditionally overwrite the cache entry and return
//     a live result. On transport failures, provider failure
//     envelopes, or undecodable bodies, return a degraded fallback
//     result instead of an error.
//
// # Basic Usage
//
//	client, err := provider.New(provider.DefaultConfig(apiKey))
//	if err != nil {
//		return err
//	}
//
//	result, err := client.SearchFunds(ctx, provider.SearchFundsRequest{
//		Keyword: "consumer",
//	})
//	if err != nil {
//		// invalid request; nothing was sent
//		return err
//	}
//	if result.Degraded {
//		// substitute payload, render with a notice
//	}
//
//	var funds []map[string]any
//	if err := result.Decode(&funds); err != nil {
//		return err
//	}
//
// # Raw Fetches
//
// Typed endpoint methods cover the known provider surface; Fetch and
// Refresh accept any endpoint name and raw parameters:
//
//	result, err := client.Fetch(ctx, "SearchFunds", map[string]any{
//		"keyword": "consumer", "page": 0, "size": 20,
//	})
//
// # Degradation Contract
//
// Transient failures never surface as errors. The returned Result
// carries Degraded=true, Source=fallback, and a schema-compatible
// substitute payload, so callers render a populated page with a
// "data temporarily unavailable" notice instead of crashing.
//
// # Metrics
//
// The client exports Prometheus metrics:
//
//   - fundboard_provider_requests_total{endpoint, outcome}
//   - fundboard_provider_request_duration_seconds{endpoint}
//   - fundboard_provider_errors_total{class}
//   - fundboard_provider_degraded_total{endpoint}
package provider
