package config

import (
	"github.com/spf13/viper"
)

// Observes groups error reporting and tracing settings.
type Observes struct {
	Sentry *Sentry
	Tracer *Tracer
}

// Sentry config struct
type Sentry struct {
	Endpoint    string
	Environment string
	Release     string
	SampleRate  float64
}

// Tracer config struct for OpenTelemetry
type Tracer struct {
	Endpoint     string // OTLP gRPC endpoint
	ServiceName  string
	SamplingRate float64 // 0.0 to 1.0
}

func setObservesDefaults(v *viper.Viper) {
	v.SetDefault("observes.tracer.service_name", "taskd")
}

func getObservesConfig(v *viper.Viper) *Observes {
	return &Observes{
		Sentry: &Sentry{
			Endpoint:    v.GetString("observes.sentry.endpoint"),
			Environment: v.GetString("observes.sentry.environment"),
			Release:     v.GetString("observes.sentry.release"),
			SampleRate:  getFloat64OrDefault(v, "observes.sentry.sample_rate", 1.0),
		},
		Tracer: &Tracer{
			Endpoint:     v.GetString("observes.tracer.endpoint"),
			ServiceName:  v.GetString("observes.tracer.service_name"),
			SamplingRate: getFloat64OrDefault(v, "observes.tracer.sampling_rate", 1.0),
		},
	}
}
