// Package observability aggregates runtime metrics for the stats endpoint.
package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ExchangeStats tracks counters for the exchange pipeline with atomics,
// so the hot path never takes a lock.
type ExchangeStats struct {
	log *slog.Logger

	exchanges       uint64
	engineFailures  uint64
	messagesIndexed uint64
	engineNanos     uint64
}

// Snapshot is the JSON shape served by GET /stats.
type Snapshot struct {
	Exchanges        uint64  `json:"exchanges"`
	EngineFailures   uint64  `json:"engine_failures"`
	MessagesIndexed  uint64  `json:"messages_indexed"`
	AvgEngineLatency string  `json:"avg_engine_latency"`
	AllocMemMb       uint64  `json:"alloc_mem_mb"`
	NumGC            uint32  `json:"num_gc"`
	ProcessRSSMb     uint64  `json:"process_rss_mb"`
	ProcessCPU       float64 `json:"process_cpu_percent"`
	Goroutines       int     `json:"goroutines"`
}

func NewExchangeStats(log *slog.Logger) *ExchangeStats {
	return &ExchangeStats{log: log}
}

func (s *ExchangeStats) IncrExchanges() {
	atomic.AddUint64(&s.exchanges, 1)
}

func (s *ExchangeStats) IncrEngineFailures() {
	atomic.AddUint64(&s.engineFailures, 1)
}

func (s *ExchangeStats) IncrMessagesIndexed() {
	atomic.AddUint64(&s.messagesIndexed, 1)
}

// ObserveEngineLatency accumulates engine round-trip time.
func (s *ExchangeStats) ObserveEngineLatency(d time.Duration) {
	atomic.AddUint64(&s.engineNanos, uint64(d.Nanoseconds()))
}

// Snapshot reads the counters plus process-level metrics. The gopsutil
// lookups can fail on exotic platforms; those fields are simply left at
// zero rather than failing the whole snapshot.
func (s *ExchangeStats) Snapshot() Snapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	exchanges := atomic.LoadUint64(&s.exchanges)
	nanos := atomic.LoadUint64(&s.engineNanos)
	avg := time.Duration(0)
	if exchanges > 0 {
		avg = time.Duration(nanos / exchanges)
	}

	snap := Snapshot{
		Exchanges:        exchanges,
		EngineFailures:   atomic.LoadUint64(&s.engineFailures),
		MessagesIndexed:  atomic.LoadUint64(&s.messagesIndexed),
		AvgEngineLatency: avg.String(),
		AllocMemMb:       memStats.Alloc / 1024 / 1024,
		NumGC:            memStats.NumGC,
		Goroutines:       runtime.NumGoroutine(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.log.Debug("Process metrics unavailable", "error", err)
		return snap
	}
	if memInfo, err := proc.MemoryInfo(); err == nil {
		snap.ProcessRSSMb = memInfo.RSS / 1024 / 1024
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		snap.ProcessCPU = cpu
	}
	return snap
}
