package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data represents the data configuration
type Data struct {
	MongoDB *MongoDB
}

// MongoDB describes the document store holding the task collection.
type MongoDB struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

func setDataDefaults(v *viper.Viper) {
	v.SetDefault("data.mongodb.database", "taskd")
	v.SetDefault("data.mongodb.collection", "tasks")
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		MongoDB: &MongoDB{
			URI:            v.GetString("data.mongodb.uri"),
			Database:       v.GetString("data.mongodb.database"),
			Collection:     v.GetString("data.mongodb.collection"),
			ConnectTimeout: getDurationOrDefault(v, "data.mongodb.connect_timeout", 10*time.Second),
		},
	}
}
