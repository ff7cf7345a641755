package main

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/external/kafka"
	"github.com/Meesho/BharatMLStack/flightdelay/handlers/loader"
	"github.com/Meesho/BharatMLStack/flightdelay/handlers/predict"
	"github.com/Meesho/BharatMLStack/flightdelay/internal/server"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/config"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"
)

var AppConfigs configs.AppConfigs

func main() {
	viper.AutomaticEnv()
	viper.SetConfigName("application") // file name without .env
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./cmd/flightdelay/")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No application.env found, reading configuration from the environment")
	}
	configs.InitConfig(&AppConfigs)
	logger.InitLogger(&AppConfigs)
	if gc := AppConfigs.Configs.AppGcPercentage; gc > 0 {
		debug.SetGCPercent(gc)
	}
	metrics.InitMetrics(&AppConfigs)

	manifest, err := config.LoadManifest(AppConfigs.Configs.ModelManifestPath)
	if err != nil {
		logger.Panic("Error loading model manifest", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(AppConfigs.Configs.ModelLoadTimeoutSec)*time.Second)
	fetcher, err := loader.NewFetcher(ctx, manifest, &AppConfigs)
	if err != nil {
		cancel()
		logger.Panic(fmt.Sprintf("Error initialising %s model source", manifest.Source), err)
	}
	modelSet, err := loader.LoadModelSet(ctx, loader.NewLoader(manifest.Source, fetcher), manifest)
	cancel()
	if err != nil {
		logger.Panic("Error loading models", err)
	}
	logger.Info(fmt.Sprintf("Models loaded from %s source, clustering enabled: %t", manifest.Source, modelSet.ClusteringConfigured()))

	kafka.InitKafkaLogger(&AppConfigs)
	defer kafka.CloseKafkaLogger()

	gateway := predict.NewGateway(modelSet, AppConfigs.Configs.PredictionLoggingPercent)
	server.InitServer(&AppConfigs, gateway)
}
