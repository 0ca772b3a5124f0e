package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/courtlog/hoopstats/internal/config"
	"github.com/courtlog/hoopstats/internal/database"
	"github.com/courtlog/hoopstats/internal/identity"
	"github.com/courtlog/hoopstats/internal/metrics"
	"github.com/courtlog/hoopstats/internal/notifier"
	"github.com/courtlog/hoopstats/internal/session"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, cfg config.Config, notif notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := tracker.New(db)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	sessions := session.NewManager(store, metricsSvc)
	if notif == nil {
		notif = notifier.NewMock()
	}

	server := NewServer(store, sessions, metricsSvc, metricsHandler, cfg, identity.NewMock(), notif)
	return server, dbTeardown
}

func doJSON(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func loginUser(t *testing.T, server *Server, email string) tracker.User {
	t.Helper()
	rr := doJSON(t, server, "POST", "/login", loginRequest{Email: email})
	require.Equal(t, http.StatusOK, rr.Code)
	var user tracker.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	return user
}

func createGame(t *testing.T, server *Server, userID int64, dual bool) int64 {
	t.Helper()
	rr := doJSON(t, server, "POST", "/games", createGameRequest{UserID: userID, Name: "Test game", DualTeam: dual})
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp["game_id"]
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()

	rr := doJSON(t, server, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestLoginHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{AdminEmails: []string{"admin@example.com"}}, nil)
	defer teardown()

	t.Run("regular user", func(t *testing.T) {
		user := loginUser(t, server, "coach@example.com")
		assert.Equal(t, "coach@example.com", user.Email)
		assert.False(t, user.IsPro)
	})

	t.Run("admin email gets pro automatically", func(t *testing.T) {
		user := loginUser(t, server, "Admin@Example.com")
		assert.True(t, user.IsPro)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/login", loginRequest{Email: "  "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGameLifecycle(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")

	gameID := createGame(t, server, user.ID, true)

	t.Run("list shows the game", func(t *testing.T) {
		rr := doJSON(t, server, "GET", fmt.Sprintf("/games?user_id=%d", user.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var games []tracker.Game
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
		require.Len(t, games, 1)
		assert.Equal(t, gameID, games[0].ID)
	})

	t.Run("default roster is seeded", func(t *testing.T) {
		rr := doJSON(t, server, "GET", fmt.Sprintf("/games/%d/boxscore", gameID), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var box boxScoreResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &box))
		require.Len(t, box.Home, 5)
		require.Len(t, box.Away, 5)
		assert.Equal(t, "Player 1", box.Home[0].Player)
		assert.Equal(t, "Opponent 1", box.Away[0].Player)
	})

	t.Run("delete answers 200 and empties the list", func(t *testing.T) {
		rr := doJSON(t, server, "DELETE", fmt.Sprintf("/games/%d?user_id=%d", gameID, user.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(t, server, "GET", fmt.Sprintf("/games?user_id=%d", user.ID), nil)
		var games []tracker.Game
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
		assert.Empty(t, games)
	})

	t.Run("foreign delete is a silent 200", func(t *testing.T) {
		other := loginUser(t, server, "other@example.com")
		ownGame := createGame(t, server, user.ID, false)

		rr := doJSON(t, server, "DELETE", fmt.Sprintf("/games/%d?user_id=%d", ownGame, other.ID), nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(t, server, "GET", fmt.Sprintf("/games?user_id=%d", user.ID), nil)
		var games []tracker.Game
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
		assert.Len(t, games, 1)
	})
}

func TestUpdateRosterHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, true)

	t.Run("valid update replaces the roster", func(t *testing.T) {
		rr := doJSON(t, server, "PUT", fmt.Sprintf("/games/%d/roster", gameID),
			rosterRequest{Home: "Alice\nBob", Away: "Cara", DualTeam: true})
		require.Equal(t, http.StatusOK, rr.Code)

		box := getBoxScore(t, server, gameID)
		require.Len(t, box.Home, 2)
		require.Len(t, box.Away, 1)
		assert.Equal(t, "Alice", box.Home[0].Player)
	})

	t.Run("empty home side rejected", func(t *testing.T) {
		rr := doJSON(t, server, "PUT", fmt.Sprintf("/games/%d/roster", gameID),
			rosterRequest{Home: "\n  \n", Away: "Cara", DualTeam: true})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func getBoxScore(t *testing.T, server *Server, gameID int64) boxScoreResponse {
	t.Helper()
	rr := doJSON(t, server, "GET", fmt.Sprintf("/games/%d/boxscore", gameID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var box boxScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &box))
	return box
}

func TestActionAndUndoHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, false)

	box := getBoxScore(t, server, gameID)
	playerID := findPlayerID(t, server, gameID, box.Home[0].Player)

	t.Run("apply a made two", func(t *testing.T) {
		rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
			UserID:   user.ID,
			PlayerID: playerID,
			Delta:    stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1},
		})
		require.Equal(t, http.StatusOK, rr.Code)

		box := getBoxScore(t, server, gameID)
		assert.Equal(t, 2, box.Home[0].Points)
		assert.Equal(t, "1/1", box.Home[0].FG)
	})

	t.Run("undo restores the line", func(t *testing.T) {
		rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/undo", gameID), undoRequest{UserID: user.ID})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp undoResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Undone)
		assert.False(t, resp.CanUndo)

		box := getBoxScore(t, server, gameID)
		assert.Equal(t, 0, box.Home[0].Points)
	})

	t.Run("undo on empty stack is a no-op", func(t *testing.T) {
		rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/undo", gameID), undoRequest{UserID: user.ID})
		require.Equal(t, http.StatusOK, rr.Code)
		var resp undoResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Nil(t, resp.Undone)
	})

	t.Run("unknown player is 404", func(t *testing.T) {
		rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
			UserID:   user.ID,
			PlayerID: 99999,
			Delta:    stats.Delta{stats.KeyAST: 1},
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("empty delta is 400", func(t *testing.T) {
		rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
			UserID:   user.ID,
			PlayerID: playerID,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown game is 404", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/games/424242/actions", actionRequest{
			UserID:   user.ID,
			PlayerID: playerID,
			Delta:    stats.Delta{stats.KeyAST: 1},
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("undo on unknown game is 404", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/games/424242/undo", undoRequest{UserID: user.ID})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// findPlayerID resolves a player id through the summary/player endpoints by
// probing the box score order against the stored roster.
func findPlayerID(t *testing.T, server *Server, gameID int64, name string) int64 {
	t.Helper()
	state, err := server.Store.LoadGame(gameID, stats.AllKeys)
	require.NoError(t, err)
	id, ok := state.IDByName[name]
	require.True(t, ok, "player %s not in roster", name)
	return id
}

func TestSummaryHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, true)

	homeID := findPlayerID(t, server, gameID, "Player 1")
	awayID := findPlayerID(t, server, gameID, "Opponent 1")

	apply := func(playerID int64, delta stats.Delta) {
		rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
			UserID: user.ID, PlayerID: playerID, Delta: delta,
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	apply(homeID, stats.Delta{stats.Key3PM: 1, stats.Key3PA: 1})
	apply(awayID, stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1})
	apply(homeID, stats.Delta{stats.KeyDREB: 1})

	rr := doJSON(t, server, "GET", fmt.Sprintf("/games/%d/summary?user_id=%d", gameID, user.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp summaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.HomeScore)
	assert.Equal(t, 2, resp.AwayScore)
	assert.Equal(t, 3, resp.HomeRun)
	assert.Equal(t, 2, resp.AwayRun)
	assert.Equal(t, 1, resp.Period)
	assert.True(t, resp.DualTeam)
	assert.True(t, resp.CanUndo)
	assert.Equal(t, "Player 1", resp.HomeLead.Points.Name)
	require.NotEmpty(t, resp.Recent)
	assert.Equal(t, "DREB +1", resp.Recent[0].Label)
}

func TestBoxScoreHandler_Advanced(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, false)
	playerID := findPlayerID(t, server, gameID, "Player 1")

	rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
		UserID: user.ID, PlayerID: playerID,
		Delta: stats.Delta{stats.Key3PM: 1, stats.Key3PA: 1},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "GET", fmt.Sprintf("/games/%d/boxscore?advanced=true", gameID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var box boxScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &box))
	// eFG = (1 + 0.5*1) / 1
	assert.InDelta(t, 150.0, box.Home[0].EffFGPct, 0.01)
}

func TestPlayerHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, false)
	playerID := findPlayerID(t, server, gameID, "Player 2")

	rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
		UserID: user.ID, PlayerID: playerID,
		Delta: stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "GET", fmt.Sprintf("/games/%d/players/%d?user_id=%d", gameID, playerID, user.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp playerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Player 2", resp.Player.Name)
	assert.Equal(t, 2, resp.Points)
	require.Len(t, resp.Recent, 1)
	assert.Equal(t, playerID, resp.Recent[0].PlayerID)

	rr = doJSON(t, server, "GET", fmt.Sprintf("/games/%d/players/99999?user_id=%d", gameID, user.ID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExportHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, false)

	t.Run("non-pro is forbidden", func(t *testing.T) {
		rr := doJSON(t, server, "GET", fmt.Sprintf("/games/%d/export/csv?user_id=%d", gameID, user.ID), nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	rr := doJSON(t, server, "POST", "/billing/confirm", billingRequest{UserID: user.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("pro gets CSV", func(t *testing.T) {
		rr := doJSON(t, server, "GET", fmt.Sprintf("/games/%d/export/csv?user_id=%d", gameID, user.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
		first := strings.SplitN(rr.Body.String(), "\n", 2)[0]
		assert.Equal(t, strings.Join(stats.BoxColumns, ","), first)
	})

	t.Run("pro gets PDF", func(t *testing.T) {
		rr := doJSON(t, server, "GET", fmt.Sprintf("/games/%d/export/pdf?user_id=%d", gameID, user.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
	})
}

func TestProStatusAndBilling(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{}, nil)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")

	rr := doJSON(t, server, "GET", fmt.Sprintf("/users/%d/pro", user.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"is_pro": false}`, rr.Body.String())

	rr = doJSON(t, server, "POST", "/billing/confirm", billingRequest{UserID: user.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "GET", fmt.Sprintf("/users/%d/pro", user.ID), nil)
	assert.JSONEq(t, `{"is_pro": true}`, rr.Body.String())
}

func TestNotifyHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, config.Config{}, notif)
	defer teardown()
	user := loginUser(t, server, "coach@example.com")
	gameID := createGame(t, server, user.ID, true)
	playerID := findPlayerID(t, server, gameID, "Player 1")

	rr := doJSON(t, server, "POST", fmt.Sprintf("/games/%d/actions", gameID), actionRequest{
		UserID: user.ID, PlayerID: playerID,
		Delta: stats.Delta{stats.Key2PM: 1, stats.Key2PA: 1},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "POST", fmt.Sprintf("/games/%d/notify?user_id=%d&dry_run=true", gameID, user.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, notif.SendGameSummaryCalls, 1)
	call := notif.SendGameSummaryCalls[0]
	assert.True(t, call.DryRun)
	assert.Equal(t, 2, call.Summary.HomeScore)
	assert.Equal(t, "Test game", call.Summary.GameName)
	assert.True(t, call.Summary.DualTeam)
}
