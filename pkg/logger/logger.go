package logger

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var applicationName = "flightdelay"

const (
	logTemplate string = "%s %v [%s] %s\n"
	timeFormat  string = "02-01-2006 15:04:05.000 -0700"
)

func InitLogger(configs *configs.AppConfigs) {
	logLevel := strings.ToUpper(configs.Configs.ApplicationLogLevel)
	if configs.Configs.ApplicationName != "" {
		applicationName = configs.Configs.ApplicationName
	}
	if logLevel == "" {
		logLevel = "INFO"
	}
	switch logLevel {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "FATAL":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "PANIC":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		Panic(fmt.Sprintf("Incorrect log level %s", logLevel), nil)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	Info("Logger initialized!")
}

func Debug(message string) {
	log.Debug().Msgf(logTemplate, applicationName, now(), "DEBUG", message)
}

func Info(message string) {
	log.Info().Msgf(logTemplate, applicationName, now(), "INFO", message)
}

func Warn(message string) {
	log.Warn().Msgf(logTemplate, applicationName, now(), "WARN", message)
}

func Error(message string, err error) {
	log.Error().AnErr("Error ", err).Msgf(logTemplate, applicationName, now(), "ERROR", message)
}

// ErrorWithFields attaches fields so operators can tie a failure back to the request that caused it.
func ErrorWithFields(message string, err error, fields map[string]interface{}) {
	log.Error().AnErr("Error ", err).Fields(fields).Msgf(logTemplate, applicationName, now(), "ERROR", message)
}

func PercentError(message string, err error, loggingPercent int) {
	if loggingPercent == 0 {
		loggingPercent = 10
	}
	randomNumber := rand.Intn(100) + 1
	if randomNumber <= loggingPercent {
		log.Error().AnErr("Error ", err).Msgf(logTemplate, applicationName, now(), "ERROR", message)
	}
}

func Panic(message string, err error) {
	Error(message, err)
	log.Panic().AnErr("Error", err).Msgf(logTemplate, applicationName, now(), "PANIC", message)
}

func now() string {
	return time.Now().Format(timeFormat)
}
