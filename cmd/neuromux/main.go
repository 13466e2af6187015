package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gopkg.in/yaml.v3"

	"github.com/neuromux/neuromux/conf"
	"github.com/neuromux/neuromux/internal/build"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/server"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			handleConfigCommand()
			return
		case "version", "--version", "-v":
			showVersion()
			return
		case "build-info":
			fmt.Println(build.GetBuildInfo())
			return
		case "help", "--help", "-h":
			showHelp()
			return
		}
	}

	startServer()
}

type fxLogger struct{}

func (l *fxLogger) LogEvent(event fxevent.Event) {
	log.Debug(context.Background(), "fx event", log.Any("event", event))
}

func startServer() {
	server.Run(
		fx.WithLogger(func() fxevent.Logger {
			return &fxLogger{}
		}),
		fx.Provide(conf.Load),
	)
}

func showVersion() {
	fmt.Printf("neuromux %s\n", build.Version)
}

func showHelp() {
	fmt.Println(`neuromux - MCP server brokering AI model providers

Usage:
  neuromux                 start the server on stdio (default)
  neuromux version         print the version
  neuromux build-info      print full build information
  neuromux config preview  print the effective configuration (secrets masked)
  neuromux config validate check the configuration and exit

Configuration comes from environment variables; see the README for the list.`)
}

func handleConfigCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: neuromux config <preview|validate>")
		os.Exit(1)
	}

	switch os.Args[2] {
	case "preview":
		configPreview()
	case "validate":
		configValidate()
	default:
		fmt.Println("Usage: neuromux config <preview|validate>")
		os.Exit(1)
	}
}

func configPreview() {
	format := "yml"

	for i := 3; i < len(os.Args); i++ {
		if (os.Args[i] == "--format" || os.Args[i] == "-f") && i+1 < len(os.Args) {
			format = os.Args[i+1]
		}
	}

	cfg, err := conf.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	cfg = redactSecrets(cfg)

	var output []byte

	switch format {
	case "json":
		output, err = prettyjson.Marshal(cfg)
	case "yml", "yaml":
		output, err = yaml.Marshal(cfg)
	default:
		fmt.Printf("Unsupported format: %s\n", format)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Failed to preview config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}

func configValidate() {
	cfg, err := conf.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := conf.Validate(cfg); err != nil {
		fmt.Println("Configuration validation failed:")

		for _, line := range strings.Split(err.Error(), "\n") {
			if strings.TrimSpace(line) != "" {
				fmt.Printf("  %s\n", line)
			}
		}

		os.Exit(1)
	}

	fmt.Println("Configuration is valid.")
}

// redactSecrets masks credentials so preview output is safe to paste into a
// bug report.
func redactSecrets(cfg conf.Config) conf.Config {
	cfg.Gemini.APIKey = mask(cfg.Gemini.APIKey)
	cfg.OpenAI.APIKey = mask(cfg.OpenAI.APIKey)
	cfg.OpenRouter.APIKey = mask(cfg.OpenRouter.APIKey)
	cfg.Custom.APIKey = mask(cfg.Custom.APIKey)

	return cfg
}

func mask(key string) string {
	if key == "" {
		return ""
	}

	return "********"
}
