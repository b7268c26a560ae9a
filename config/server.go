package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Server holds the HTTP listener settings.
type Server struct {
	Host            string
	Port            int
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:            v.GetString("server.host"),
		Port:            v.GetInt("server.port"),
		CORSOrigins:     getListOrDefault(v, "server.cors_origins", []string{"*"}),
		ReadTimeout:     getDurationOrDefault(v, "server.read_timeout", 15*time.Second),
		WriteTimeout:    getDurationOrDefault(v, "server.write_timeout", 15*time.Second),
		IdleTimeout:     getDurationOrDefault(v, "server.idle_timeout", 60*time.Second),
		ShutdownTimeout: getDurationOrDefault(v, "server.shutdown_timeout", 30*time.Second),
	}
}
