// Command statepilot is an interactive harness for the application state
// stack. It drives a small demo machine with key sequences, records every
// lifecycle step into a journal, and exports the recording as a summary,
// a Mermaid diagram, raw JSON, or a checksummed journal file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/lanternworks/lantern-common/build"
	"github.com/lanternworks/lantern-common/cli"
	"github.com/lanternworks/lantern-common/config"
	"github.com/lanternworks/lantern-common/logger"
	"github.com/lanternworks/lantern-common/shutdown"
	"github.com/lanternworks/lantern-common/stage"
	"github.com/lanternworks/lantern-common/startup"
	"github.com/lanternworks/lantern-common/telemetry"
)

const appName = "statepilot"

// rawBuildInfo is populated at link time. See the build package for the
// expected payload and ldflags incantation.
var rawBuildInfo string //nolint:gochecknoglobals

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	showVersion := flag.Bool("version", false, "print build information and exit")
	flag.Parse()

	if *showVersion {
		info, _ := build.Parse(rawBuildInfo)
		fmt.Println(appName, info.Summary())

		return
	}

	ctx := shutdown.SetupHandler()

	ctx, err := startup.ConfigureEnvironment(ctx)
	if err != nil {
		logger.Fatal("Failed to load environment files", "error", err)
	}

	log := configureLogging(ctx)

	defer func() {
		if err := telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	fmt.Println(cli.BannerAutoWidth("statepilot, a flight deck for application states", cli.AlignCenter))

	harness := newHarness(cfg, log)
	if err := harness.menu(ctx); err != nil {
		logger.Fatal("Harness failed", "error", err)
	}

	log.InfoContext(ctx, "Goodbye")
}

// configureLogging stands up telemetry first so its log handler can join
// the logger fanout. Telemetry failures degrade to local logging only.
func configureLogging(ctx context.Context) *slog.Logger {
	var opts []logger.Option

	telemetryCfg, err := telemetry.LoadConfigFromEnv(ctx, string(stage.Current(ctx)))
	if err != nil {
		slog.Warn("Telemetry configuration invalid, continuing without it", "error", err)
	} else if err := telemetry.Initialize(ctx, telemetryCfg); err != nil {
		slog.Warn("Telemetry initialization failed, continuing without it", "error", err)
	} else if handler, ok := telemetry.LogHandler(appName); ok {
		opts = append(opts, logger.WithExtraHandler(handler))
	}

	return logger.ConfigureLogging(ctx, appName, opts...)
}
