package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderRound(w io.Writer, round *brackets.Round) error {
	fmt.Fprintf(w, "Round %d of tournament %d\n", round.Number, round.TournamentID)

	tw := newTable(w)
	fmt.Fprintln(tw, "TABLE\tPLAYER A\tPLAYER B\t")
	for _, p := range round.Pairings {
		note := ""
		if p.Rematch {
			note = "rematch"
		}
		fmt.Fprintf(tw, "%d\t%s (%d)\t%s (%d)\t%s\n", p.Table, p.PlayerAName, p.PlayerAID, p.PlayerBName, p.PlayerBID, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if round.Bye != nil {
		fmt.Fprintf(w, "Bye: %s (%d)\n", round.Bye.Name, round.Bye.PlayerID)
	}
	return nil
}

func renderStandings(w io.Writer, standings []models.Standing) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tID\tPLAYER\tSCORE\tMATCHES\tBYES\tOMW")
	for i, s := range standings {
		omw := "-"
		if s.OMW != nil {
			omw = strconv.Itoa(*s.OMW)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\t%s\n", i+1, s.PlayerID, s.Name, s.Score, s.Matches, s.Byes, omw)
	}
	return tw.Flush()
}

func renderTournaments(w io.Writer, tournaments []models.Tournament) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, t := range tournaments {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Name, t.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
