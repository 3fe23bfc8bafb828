package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fjacquet/cashflow-insight/cmd/analyze"
	"fjacquet/cashflow-insight/cmd/root"
	"fjacquet/cashflow-insight/cmd/sheets"
)

func init() {
	// Load environment variables silently before any logging happens.
	loadEnvSilently()

	// Configure the global log level so every logger created later
	// inherits it.
	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(sheets.Cmd)
}

// loadEnvSilently loads variables from a .env file in the working directory
// or the project root, without logging anything.
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

// configureLogLevel sets the global logrus level from LOG_LEVEL before any
// command-level configuration runs.
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

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
