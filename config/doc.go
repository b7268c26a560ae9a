// Package config loads service settings with viper.
//
// Values come from an optional YAML file and the environment. Besides the
// TASKD_ prefixed variables (TASKD_SERVER_PORT, TASKD_LOGGER_LEVEL, ...),
// the variables MONGO_URL, DB_NAME and CORS_ORIGINS are honoured:
//
//	app_name: taskd
//	environment: production
//	server:
//	  host: 0.0.0.0
//	  port: 8000
//	  cors_origins: ["https://board.example.com"]
//	logger:
//	  level: info
//	  format: json
//	data:
//	  mongodb:
//	    uri: mongodb://localhost:27017
//	    database: taskd
//	    collection: tasks
package config
