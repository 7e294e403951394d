package chat

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_connected_sessions",
		Help: "Number of currently connected sessions",
	})

	OpenRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_open_rooms",
		Help: "Number of rooms created since server start",
	})

	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_commands_total",
		Help: "Total commands processed by verb",
	}, []string{"verb"})

	CommandDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chat_command_duration_seconds",
		Help:    "Time to execute each command verb",
		Buckets: prometheus.DefBuckets,
	}, []string{"verb"})
)

func init() {
	prometheus.MustRegister(ConnectedSessions)
	prometheus.MustRegister(OpenRooms)
	prometheus.MustRegister(CommandsTotal)
	prometheus.MustRegister(CommandDuration)
}
