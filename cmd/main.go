package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Dosada05/swiss-tournament/config"
)

type application struct {
	cfg *config.Config
	out io.Writer
}

func (a *application) newLogger(w io.Writer) *slog.Logger {
	level, err := a.cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func newApp(out io.Writer) *cli.App {
	app := &application{out: out}

	return &cli.App{
		Name:      "swiss",
		Usage:     "Swiss-system tournament pairing service",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			app.cfg = cfg
			return nil
		},
		Commands: []*cli.Command{
			app.serveCommand(),
			app.migrateCommand(),
			app.tokenCommand(),
			app.tournamentCommand(),
			app.playerCommand(),
			app.matchCommand(),
			app.roundCommand(),
			app.standingsCommand(),
			app.resetCommand(),
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
