// Package ratelimiter caps how many changes one console session can post
// per time frame.
package ratelimiter

import "time"

type Config struct {
	RequestsPerTimeFrame int           `default:"30" validate:"gt=0"`
	TimeFrame            time.Duration `default:"10s" validate:"gt=0"`
	Enabled              bool          `default:"true"`
}

// Limiter decides whether key may make another request. When it may not,
// the duration says how long to wait.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}
