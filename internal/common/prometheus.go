package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal            = "http_requests_total"
	HTTPRequestDurationSeconds  = "http_request_duration_seconds"
	DiscordRoleCacheLookupTotal = "discord_role_cache_lookups_total"
	ChainSwitchTotal            = "chain_switch_total"
	NFTClaimAttemptTotal        = "nft_claim_attempts_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		DiscordRoleCacheLookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DiscordRoleCacheLookupTotal,
			Help: "Count of discord role cache lookups by result",
		}, []string{"result"}),
		ChainSwitchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChainSwitchTotal,
			Help: "Count of chain switch requests by outcome",
		}, []string{"outcome"}),
		NFTClaimAttemptTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NFTClaimAttemptTotal,
			Help: "Count of nft claim strategy attempts",
		}, []string{"strategy", "outcome"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
	}
)

// PromCollectors returns every metric of the service, for registering on the metrics handler.
func PromCollectors() []prometheus.Collector {
	cs := make([]prometheus.Collector, 0, len(PromCounters)+len(PromHistograms))
	for _, c := range PromCounters {
		cs = append(cs, c)
	}
	for _, h := range PromHistograms {
		cs = append(cs, h)
	}
	return cs
}

func IncCounter(name string, labels ...string) {
	if counter, ok := PromCounters[name]; ok {
		counter.WithLabelValues(labels...).Inc()
	}
}
