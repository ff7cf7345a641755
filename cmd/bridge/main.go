package main

import (
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/internal/bridge"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/httpframework"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"
)

var AppConfigs configs.AppConfigs

func main() {
	viper.AutomaticEnv()
	viper.SetDefault("port", 3000)
	viper.SetDefault("vps_api_url", "http://localhost:5000")
	viper.SetDefault("bridge_timeout_sec", 30)

	configs.InitConfig(&AppConfigs)
	AppConfigs.Configs.ApplicationPort = viper.GetInt("port")
	logger.InitLogger(&AppConfigs)
	metrics.InitMetrics(&AppConfigs)

	upstream := viper.GetString("vps_api_url")
	httpframework.Init(&AppConfigs)
	router := httpframework.Instance()
	bridge.NewProxy(upstream, time.Duration(viper.GetInt("bridge_timeout_sec"))*time.Second).Register(router)

	logger.Info(fmt.Sprintf("Bridge API is running on port %d, forwarding to %s", AppConfigs.Configs.ApplicationPort, upstream))
	if err := router.Run(fmt.Sprintf(":%d", AppConfigs.Configs.ApplicationPort)); err != nil {
		logger.Panic("Bridge API stopped", err)
	}
}
