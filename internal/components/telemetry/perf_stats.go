package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var perfMeter = otel.Meter("steamtrader.perf_stats")

// InstrumentPerfStats records process and host load on an interval until ctx
// is done. It is meant for long running commands.
func InstrumentPerfStats(ctx context.Context, tel API, interval time.Duration) {
	tel = NewScopedAPI("perf_stats", tel)

	cpuGauge, _ := perfMeter.Float64Gauge("cpu_usage")
	memoryGauge, _ := perfMeter.Int64Gauge("allocated_mb")
	goroutineGauge, _ := perfMeter.Int64Gauge("goroutine_count")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var memStats runtime.MemStats
		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)

				usage, err := cpu.PercentWithContext(ctx, 0, false)
				if err != nil || len(usage) == 0 {
					tel.ReportWarning("read cpu usage", err)
				} else {
					cpuGauge.Record(ctx, usage[0])
				}

				memoryGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
				goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))
				tel.ReportDebug("sampled", memStats.Alloc/1_000_000, runtime.NumGoroutine())
			case <-ctx.Done():
				return
			}
		}
	}()
}
