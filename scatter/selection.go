// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import (
	"github.com/terragrove/mapscatter/internal/rng"
)

// pickWeightedRandom draws one allowed kind from results proportionally to
// weight. Returns false if no kind is allowed or the total weight is zero.
func pickWeightedRandom(results []KindEvaluation, src rng.Source) (Kind, bool) {
	var totalWeight float32
	for _, r := range results {
		if r.Allowed {
			totalWeight += r.Weight
		}
	}
	if totalWeight <= 0 {
		return Kind{}, false
	}

	roll := rng.Rand01(src) * totalWeight
	var first *Kind
	for i := range results {
		r := &results[i]
		if !r.Allowed {
			continue
		}
		if first == nil {
			first = &r.Kind
		}
		roll -= r.Weight
		if roll <= 0 {
			return r.Kind, true
		}
	}
	if first != nil {
		return *first, true
	}
	return Kind{}, false
}

// pickHighestProbability returns the allowed kind with maximum weight.
func pickHighestProbability(results []KindEvaluation) (Kind, bool) {
	best := -1
	for i, r := range results {
		if !r.Allowed {
			continue
		}
		if best == -1 || r.Weight > results[best].Weight {
			best = i
		}
	}
	if best == -1 {
		return Kind{}, false
	}
	return results[best].Kind, true
}
