package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-csv/cmd/categorize"
	"fjacquet/budget-csv/cmd/clean"
	"fjacquet/budget-csv/cmd/process"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/config"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level before any logger is created
	configureLogLevelDirectly()

	// 3. Initialize root command and register subcommands
	root.Init()
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(clean.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances before any logging happens
func configureLogLevelDirectly() {
	logLevelStr := config.GetEnv("LOG_LEVEL", "info")

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
