package configs

import (
	"log"

	"github.com/spf13/viper"
)

func InitConfig(appConfigs *AppConfigs) {
	staticConfig := appConfigs.GetStaticConfig()
	cfg, ok := staticConfig.(*Configs)
	if !ok {
		log.Fatal("Failed to cast static config to *Configs")
	}

	setDefaults()

	// Manually bind environment variables to mapstructure keys
	bindEnvVars()

	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Failed to unmarshal config from environment: %v", err)
	}

	log.Println("Configuration loaded from environment variables")
}

func setDefaults() {
	viper.SetDefault("app_env", "local")
	viper.SetDefault("app_log_level", "INFO")
	viper.SetDefault("app_name", "flightdelay")
	viper.SetDefault("app_port", 5000)
	viper.SetDefault("predict_routes", "/predict,/api/predict")
	viper.SetDefault("cors_allowedOrigins", "*")
	viper.SetDefault("log_requestHeaders", "user-agent,x-request-id")
	viper.SetDefault("model_manifestPath", "models.yaml")
	viper.SetDefault("model_loadTimeoutSec", 300)
	viper.SetDefault("metrics_sampling_rate", "1")
	viper.SetDefault("telegraf_host", "localhost")
	viper.SetDefault("telegraf_port", "8125")
	viper.SetDefault("error_loggingPercent", 100)
}

func bindEnvVars() {
	// Application config
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_port", "APP_PORT", "PORT")
	viper.BindEnv("app_gc_percentage", "APP_GC_PERCENTAGE")

	// HTTP config
	viper.BindEnv("predict_routes", "PREDICT_ROUTES")
	viper.BindEnv("cors_allowedOrigins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("log_requestHeaders", "LOG_REQUEST_HEADERS")

	// Model config
	viper.BindEnv("model_manifestPath", "MODEL_MANIFEST_PATH")
	viper.BindEnv("model_loadTimeoutSec", "MODEL_LOAD_TIMEOUT_SEC")

	// ETCD config
	viper.BindEnv("etcd_server", "ETCD_SERVER")
	viper.BindEnv("etcd_username", "ETCD_USERNAME")
	viper.BindEnv("etcd_password", "ETCD_PASSWORD")

	// Zookeeper config
	viper.BindEnv("zookeeper_server", "ZOOKEEPER_SERVER")

	// Metrics / Telegraf config
	viper.BindEnv("metrics_sampling_rate", "METRIC_SAMPLING_RATE")
	viper.BindEnv("telegraf_host", "TELEGRAF_HOST")
	viper.BindEnv("telegraf_port", "TELEGRAF_PORT")

	// Kafka prediction logging config
	viper.BindEnv("kafka_bootstrapServers", "KAFKA_BOOTSTRAP_SERVERS")
	viper.BindEnv("kafka_loggingTopic", "KAFKA_LOGGING_TOPIC")
	viper.BindEnv("prediction_loggingPercent", "PREDICTION_LOGGING_PERCENT")
	viper.BindEnv("error_loggingPercent", "ERROR_LOGGING_PERCENT")
}
