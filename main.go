package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pitlane/internal/pitlane/cmd"
)

// LogEnv names the environment variable holding the default log level. The
// --trace flag still overrides it.
const LogEnv = "PITLANE_LOG"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetOutput(os.Stderr)

	level, err := logLevel(os.Getenv(LogEnv))
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.SetLevel(level)

	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// logLevel parses a log level name, falling back to Info when it is empty.
func logLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}

	level, err := logrus.ParseLevel(name)
	if err != nil {
		return level, fmt.Errorf("%s: %w", LogEnv, err)
	}

	return level, nil
}
