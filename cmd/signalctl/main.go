package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Ndubireagan/Traffic-light-control/internal/controller"
	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigconfig"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigutils"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigvision"
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

func main() {
	godotenv.Load() //optional .env, missing file is fine

	args := sigutils.ProcessCmdArgs()
	args.ApplyEnv()

	config := sigconfig.Default()
	if args.ConfigPath != "" {
		var err error
		config, err = sigconfig.Load(args.ConfigPath)
		if err != nil {
			Logger.Fatal().Msgf("Cannot load config: %v", err)
		}
	}
	if args.TransportPath != "" {
		config.TransportPath = args.TransportPath
	}
	if args.SimulateLink {
		config.SimulateLink = true
	}

	// Starting Programme
	Logger.Info().Msg("Starting Traffic Light Control")

	// Counts arrive from the vision pipeline as COUNT datagrams on the
	// status port
	counter := sigvision.NewManualCounter(config.NumLanes)

	ctrl := controller.NewController(config, args.Identifier, counter)
	ctrl.Start()

	Logger.Info().Msgf("Controller: %v", ctrl.MetaData.String())

	if err := ctrl.Status.Broadcast.Start(config.StatusPeriod()); err != nil {
		Logger.Error().Msgf("Cannot start status broadcast: %v", err)
	}
	if err := ctrl.Status.Listen.Start(); err != nil {
		Logger.Error().Msgf("Cannot start status listener: %v", err)
	}

	interruptChannel := make(chan os.Signal, 1)
	signal.Notify(interruptChannel, os.Interrupt, syscall.SIGTERM)
	<-interruptChannel

	Logger.Info().Msg("Interrupted, shutting down")
	ctrl.Stop()
}
