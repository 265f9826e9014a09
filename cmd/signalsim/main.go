package main

import (
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"github.com/Ndubireagan/Traffic-light-control/internal/controller"
	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigconfig"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigevent"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigutils"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigvision"
)

var Logger = logger.GetLoggerConfigured(zerolog.DebugLevel)

const VEHICLES_PER_KEYPRESS = 5

// Hardware-free demo: counts random-walk on their own, keys 1..N dump
// extra vehicles on a lane, 'f' forces a switch, 'q' or Esc quits.
func main() {
	args := sigutils.ProcessCmdArgs()

	config := sigconfig.Default()
	if args.ConfigPath != "" {
		var err error
		config, err = sigconfig.Load(args.ConfigPath)
		if err != nil {
			Logger.Fatal().Msgf("Cannot load config: %v", err)
		}
	}
	config.SimulateLink = true

	Logger.Info().Msg("Starting Traffic Light Simulator")

	counter := sigvision.NewSimulatedCounter(config.NumLanes, time.Now().UnixNano())

	ctrl := controller.NewController(config, args.Identifier, counter)
	ctrl.Start()

	Logger.Info().Msgf("Controller: %v", ctrl.MetaData.String())

	if err := ctrl.Status.Broadcast.Start(config.StatusPeriod()); err != nil {
		Logger.Error().Msgf("Cannot start status broadcast: %v", err)
	}

	if err := keyboard.Open(); err != nil {
		Logger.Fatal().Msgf("Cannot open keyboard: %v", err)
	}
	defer keyboard.Close()

	Logger.Info().Msgf("Keys 1-%d add vehicles, f forces a switch, q quits", config.NumLanes)

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			Logger.Error().Msgf("Keyboard error: %v", err)
			break
		}
		if char == 'q' || key == keyboard.KeyEsc {
			break
		}
		if char == 'f' {
			ctrl.Events() <- sigevent.SignalEvent{Value: sigevent.ForceSwitchEvent{}}
			continue
		}
		lane := int(char - '1')
		if lane >= 0 && lane < config.NumLanes {
			if err := counter.AddVehicles(lane, VEHICLES_PER_KEYPRESS); err != nil {
				Logger.Error().Msgf("Cannot add vehicles: %v", err)
			} else {
				Logger.Info().Msgf("Added %d vehicles to lane %d", VEHICLES_PER_KEYPRESS, lane)
			}
		}
	}

	Logger.Info().Msg("Shutting down")
	ctrl.Stop()
}
