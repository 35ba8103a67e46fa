// Command play opens the Knight Grid desktop window.
//
// Click any cell to start; every next click must be a knight's move from the
// previous one. Press R to restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/knightgrid/desktop"
	"github.com/wricardo/mcp-training/knightgrid/game/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	cmd := &cli.Command{
		Name:  "play",
		Usage: "open the Knight Grid window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config id to play (default: the default config)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log every click",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if cmd.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

			configs, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}
			cfg := configs.GetDefault()
			if id := cmd.String("config"); id != "" {
				if cfg, err = configs.LoadConfig(id); err != nil {
					return err
				}
			}
			return desktop.Run(cfg)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("play failed")
	}
}
