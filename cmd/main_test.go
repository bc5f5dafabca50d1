package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "cli-test-secret")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"swiss"}, args...))
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := runCLI(t, "token", "--subject", "td@example.com")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (interface{}, error) {
		return []byte("cli-test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "td@example.com", claims["sub"])
	assert.Equal(t, "organizer", claims["role"])
}

func TestTournamentCreateCommand(t *testing.T) {
	out, err := runCLI(t, "tournament", "create", "Club", "Night")
	require.NoError(t, err)
	assert.Equal(t, "created tournament 1 \"Club Night\"\n", out)
}

func TestTournamentCreateRejectsBlankName(t *testing.T) {
	_, err := runCLI(t, "tournament", "create")
	assert.Error(t, err)
}

func TestResetRequiresConfirmation(t *testing.T) {
	_, err := runCLI(t, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := runCLI(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 0 matches")
}

func TestStandingsUnknownTournament(t *testing.T) {
	_, err := runCLI(t, "standings", "--tournament", "9")
	assert.Error(t, err)
}
