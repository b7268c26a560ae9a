package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// getDurationOrDefault returns duration from config or default value
func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return defaultValue
}

// getFloat64OrDefault returns float64 from config or default value
func getFloat64OrDefault(v *viper.Viper, key string, defaultValue float64) float64 {
	if v.IsSet(key) {
		return v.GetFloat64(key)
	}
	return defaultValue
}

// getListOrDefault returns a string list from config or default value.
// Environment values arrive as one comma separated string.
func getListOrDefault(v *viper.Viper, key string, defaultValue []string) []string {
	if !v.IsSet(key) {
		return defaultValue
	}
	var items []string
	switch raw := v.Get(key).(type) {
	case string:
		items = strings.Split(raw, ",")
	default:
		items = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
