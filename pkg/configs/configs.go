package configs

type Configs struct {
	ApplicationEnv      string `mapstructure:"app_env"`
	ApplicationLogLevel string `mapstructure:"app_log_level"`
	ApplicationName     string `mapstructure:"app_name"`
	ApplicationPort     int    `mapstructure:"app_port"`
	AppGcPercentage     int    `mapstructure:"app_gc_percentage"`

	//http-config
	PredictRoutes      string `mapstructure:"predict_routes"`
	CorsAllowedOrigins string `mapstructure:"cors_allowedOrigins"`
	LogRequestHeaders  string `mapstructure:"log_requestHeaders"`

	//model-config
	ModelManifestPath   string `mapstructure:"model_manifestPath"`
	ModelLoadTimeoutSec int    `mapstructure:"model_loadTimeoutSec"`

	//telegraf-config
	MetricsSamplingRate string `mapstructure:"metrics_sampling_rate"`
	Telegraf_Host       string `mapstructure:"telegraf_host"`
	Telegraf_Port       string `mapstructure:"telegraf_port"`

	ETCD_SERVER   string `mapstructure:"etcd_server"`
	ETCD_USERNAME string `mapstructure:"etcd_username"`
	ETCD_PASSWORD string `mapstructure:"etcd_password"`

	ZookeeperServer string `mapstructure:"zookeeper_server"`

	//prediction-logging-config
	KafkaBootstrapServers    string `mapstructure:"kafka_bootstrapServers"`
	KafkaLoggingTopic        string `mapstructure:"kafka_loggingTopic"`
	PredictionLoggingPercent int    `mapstructure:"prediction_loggingPercent"`
	ErrorLoggingPercent      int    `mapstructure:"error_loggingPercent"`
}

type DynamicConfigs struct {
}

type AppConfigs struct {
	Configs        Configs
	DynamicConfigs DynamicConfigs
}

func (a *AppConfigs) GetStaticConfig() interface{} {
	return &a.Configs
}

func (a *AppConfigs) GetDynamicConfig() interface{} {
	return &a.DynamicConfigs
}
