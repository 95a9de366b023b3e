package cache

import "time"

// Class groups endpoints by how quickly their payloads go stale.
type Class string

const (
	// ClassQuote covers market quotations that move intraday.
	ClassQuote Class = "quote"

	// ClassTopic covers editorial content such as hot topic searches.
	ClassTopic Class = "topic"

	// ClassStatic covers fund master data that changes at most daily.
	ClassStatic Class = "static"

	// ClassDefault covers everything else.
	ClassDefault Class = "default"
)

// Default TTLs per class.
const (
	DefaultQuoteTTL   = 60 * time.Second
	DefaultTopicTTL   = time.Hour
	DefaultStaticTTL  = 30 * time.Minute
	DefaultDefaultTTL = 5 * time.Minute
)

// Policy maps endpoint classes to cache TTLs.
type Policy struct {
	Quote   time.Duration
	Topic   time.Duration
	Static  time.Duration
	Default time.Duration
}

// DefaultPolicy returns the standard TTLs: short for quotes, long for
// topics, in between for fund static data.
func DefaultPolicy() Policy {
	return Policy{
		Quote:   DefaultQuoteTTL,
		Topic:   DefaultTopicTTL,
		Static:  DefaultStaticTTL,
		Default: DefaultDefaultTTL,
	}
}

// For returns the TTL for a class. Unknown classes and zero-valued
// durations fall back to the default TTL.
func (p Policy) For(class Class) time.Duration {
	var ttl time.Duration
	switch class {
	case ClassQuote:
		ttl = p.Quote
	case ClassTopic:
		ttl = p.Topic
	case ClassStatic:
		ttl = p.Static
	default:
		ttl = p.Default
	}
	if ttl <= 0 {
		ttl = p.Default
	}
	if ttl <= 0 {
		ttl = DefaultDefaultTTL
	}
	return ttl
}
