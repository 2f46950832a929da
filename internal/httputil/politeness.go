// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"math/rand"
	"time"

	"github.com/pdiddy/profscan/pkg/types"
)

// Sleep is the sleeper used for politeness delays. Tests replace it to run
// without waiting.
var Sleep = time.Sleep

// politenessRand is the randomness source for politeness jitter.
var politenessRand = rand.New(rand.NewSource(time.Now().UnixNano()))

const (
	// DefaultPolitenessMin and DefaultPolitenessMax bound the delay between
	// successful, non-cached fetches in a bulk loop.
	DefaultPolitenessMin = 2 * time.Second
	DefaultPolitenessMax = 5 * time.Second
)

// PolitenessDelay sleeps a uniform random duration within the configured
// window. Zero or inverted bounds fall back to the 2-5 s defaults.
func PolitenessDelay(cfg types.PolitenessConfig) {
	min, max := cfg.MinDelay, cfg.MaxDelay
	if min <= 0 || max < min {
		min, max = DefaultPolitenessMin, DefaultPolitenessMax
	}
	Sleep(min + time.Duration(politenessRand.Int63n(int64(max-min)+1)))
}
