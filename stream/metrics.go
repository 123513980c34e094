package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledprog",
		Name:      "frames_published_total",
		Help:      "Frames published to the stream topic.",
	})
	publishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledprog",
		Name:      "publish_errors_total",
		Help:      "Frames that failed to publish.",
	})
	programSwitches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledprog",
		Name:      "program_switches_total",
		Help:      "Program selections, by target program.",
	}, []string{"program"})
)
