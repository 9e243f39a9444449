package collector

import (
	"context"
	"time"

	"instawatch/models"

	probing "github.com/prometheus-community/pro-bing"
)

// Ping sends count unprivileged echo requests to host, bounded by timeout.
// Failures are recorded on the result rather than returned.
func Ping(ctx context.Context, host string, count int, timeout time.Duration) models.NetworkInfo {
	info := models.NetworkInfo{Host: host}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	pinger.Count = count
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)

	if err := pinger.RunWithContext(ctx); err != nil {
		info.Error = err.Error()
		return info
	}

	stats := pinger.Statistics()
	info.PacketLoss = stats.PacketLoss
	info.AvgRTTms = float64(stats.AvgRtt) / float64(time.Millisecond)
	info.Reachable = stats.PacketsRecv > 0
	return info
}
