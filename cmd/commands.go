package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
)

func tournamentFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:     "tournament",
		Aliases:  []string{"t"},
		Usage:    "tournament id",
		Required: true,
	}
}

// withGateway opens storage for a single command and closes it afterwards.
func (a *application) withGateway(fn func(gw repositories.Gateway) error) error {
	store, err := openBackend(a.cfg, a.newLogger(os.Stderr))
	if err != nil {
		return err
	}
	defer store.close()
	return fn(store.gateway)
}

func (a *application) migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the database schema",
		Action: func(c *cli.Context) error {
			conn, err := openDatabase(a.cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.Migrate(c.Context, conn); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "schema is up to date")
			return nil
		},
	}
}

func (a *application) tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint an organizer token for the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Value: "organizer", Usage: "token subject"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to JWT_TTL)"},
		},
		Action: func(c *cli.Context) error {
			if err := a.cfg.RequireJWT(); err != nil {
				return err
			}
			ttl := c.Duration("ttl")
			if ttl <= 0 {
				ttl = a.cfg.TokenTTL
			}
			token, err := middleware.IssueToken([]byte(a.cfg.JWTSecretKey), c.String("subject"), ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
}

func (a *application) tournamentCommand() *cli.Command {
	return &cli.Command{
		Name:  "tournament",
		Usage: "manage tournaments",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "create a tournament",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), " ")
					return a.withGateway(func(gw repositories.Gateway) error {
						t, err := services.NewTournamentService(gw, a.newLogger(os.Stderr)).CreateTournament(c.Context, name)
						if err != nil {
							return err
						}
						fmt.Fprintf(a.out, "created tournament %d %q\n", t.ID, t.Name)
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "list tournaments",
				Action: func(c *cli.Context) error {
					return a.withGateway(func(gw repositories.Gateway) error {
						tournaments, err := services.NewTournamentService(gw, a.newLogger(os.Stderr)).ListTournaments(c.Context)
						if err != nil {
							return err
						}
						return renderTournaments(a.out, tournaments)
					})
				},
			},
		},
	}
}

func (a *application) playerCommand() *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "manage tournament players",
		Subcommands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "register a new player in a tournament",
				ArgsUsage: "NAME",
				Flags:     []cli.Flag{tournamentFlag()},
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), " ")
					return a.withGateway(func(gw repositories.Gateway) error {
						p, err := services.NewPlayerService(gw, a.newLogger(os.Stderr)).RegisterPlayer(c.Context, c.Int("tournament"), name)
						if err != nil {
							return err
						}
						fmt.Fprintf(a.out, "registered player %d %q\n", p.ID, p.Name)
						return nil
					})
				},
			},
			{
				Name:  "enroll",
				Usage: "enroll an existing player in another tournament",
				Flags: []cli.Flag{
					tournamentFlag(),
					&cli.IntFlag{Name: "player", Aliases: []string{"p"}, Usage: "player id", Required: true},
				},
				Action: func(c *cli.Context) error {
					return a.withGateway(func(gw repositories.Gateway) error {
						e, err := services.NewPlayerService(gw, a.newLogger(os.Stderr)).EnrollPlayer(c.Context, c.Int("tournament"), c.Int("player"))
						if err != nil {
							return err
						}
						fmt.Fprintf(a.out, "enrolled player %d in tournament %d\n", e.PlayerID, e.TournamentID)
						return nil
					})
				},
			},
			{
				Name:  "count",
				Usage: "count players registered in a tournament",
				Flags: []cli.Flag{tournamentFlag()},
				Action: func(c *cli.Context) error {
					return a.withGateway(func(gw repositories.Gateway) error {
						n, err := services.NewPlayerService(gw, a.newLogger(os.Stderr)).CountPlayers(c.Context, c.Int("tournament"))
						if err != nil {
							return err
						}
						fmt.Fprintln(a.out, n)
						return nil
					})
				},
			},
		},
	}
}

func (a *application) matchCommand() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "record match results",
		Subcommands: []*cli.Command{
			{
				Name:  "report",
				Usage: "report the result of a match",
				Flags: []cli.Flag{
					tournamentFlag(),
					&cli.IntFlag{Name: "winner", Aliases: []string{"w"}, Usage: "winner player id", Required: true},
					&cli.IntFlag{Name: "loser", Aliases: []string{"l"}, Usage: "loser player id", Required: true},
					&cli.BoolFlag{Name: "draw", Usage: "the match was drawn"},
				},
				Action: func(c *cli.Context) error {
					input := services.ReportMatchInput{
						WinnerID: c.Int("winner"),
						LoserID:  c.Int("loser"),
						IsDraw:   c.Bool("draw"),
					}
					return a.withGateway(func(gw repositories.Gateway) error {
						svc := services.NewMatchService(gw, nil, nil, a.newLogger(os.Stderr))
						m, err := svc.ReportMatch(c.Context, c.Int("tournament"), input)
						if err != nil {
							return err
						}
						fmt.Fprintf(a.out, "recorded match %d (%s)\n", m.ID, m.Result())
						return nil
					})
				},
			},
		},
	}
}

func (a *application) roundCommand() *cli.Command {
	return &cli.Command{
		Name:  "round",
		Usage: "generate rounds",
		Subcommands: []*cli.Command{
			{
				Name:  "next",
				Usage: "pair the next round, awarding a bye when the player count is odd",
				Flags: []cli.Flag{tournamentFlag()},
				Action: func(c *cli.Context) error {
					return a.withGateway(func(gw repositories.Gateway) error {
						svc := services.NewPairingService(gw, nil, nil, a.newLogger(os.Stderr))
						round, err := svc.NextRound(c.Context, c.Int("tournament"))
						if err != nil {
							return err
						}
						return renderRound(a.out, round)
					})
				},
			},
		},
	}
}

func (a *application) standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "print the current standings",
		Flags: []cli.Flag{tournamentFlag()},
		Action: func(c *cli.Context) error {
			return a.withGateway(func(gw repositories.Gateway) error {
				standings, err := services.NewTournamentService(gw, a.newLogger(os.Stderr)).Standings(c.Context, c.Int("tournament"))
				if err != nil {
					return err
				}
				return renderStandings(a.out, standings)
			})
		},
	}
}

func (a *application) resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "delete every match, scoreboard entry, player and tournament",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "confirm the deletion"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return errors.New("refusing to delete every record without --yes")
			}
			return a.withGateway(func(gw repositories.Gateway) error {
				summary, err := services.NewAdminService(gw, a.newLogger(os.Stderr)).Reset(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "deleted %d matches, %d scoreboard entries, %d players, %d tournaments\n",
					summary.Matches, summary.ScoreboardEntries, summary.Players, summary.Tournaments)
				return nil
			})
		},
	}
}
