// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package processor

import "github.com/vechain/stakeledger/metrics"

var (
	metricOperationCount    = metrics.LazyLoadCounterVec("operations_count", []string{"op", "result"})
	metricOperationDuration = metrics.LazyLoadHistogramVec("operation_duration_ms", []string{"op"}, metrics.BucketOpMillis)
	metricCacheHitMiss      = metrics.LazyLoadGaugeVec("cache_hit_miss", []string{"event"})
)
