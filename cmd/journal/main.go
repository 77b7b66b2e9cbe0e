// Command journal is a futures trade-journal analytics CLI.
package main

import (
	"fmt"
	"os"

	"futures-journal/internal/cli"
	"futures-journal/internal/config"
	"futures-journal/internal/logging"
)

func main() {
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd, app := cli.NewRootCmd(cfg, logger)
	err = rootCmd.Execute()
	app.Close()
	if err != nil {
		logger.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs picks up --config before cobra parses flags, since the
// config decides how the command tree is wired.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
