package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/courtlog/hoopstats/internal/apperror"
	"github.com/courtlog/hoopstats/internal/export"
	"github.com/courtlog/hoopstats/internal/identity"
	"github.com/courtlog/hoopstats/internal/notifier"
	"github.com/courtlog/hoopstats/internal/session"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
	"github.com/google/uuid"
)

// runWindow is the number of recent scoring plays a run is computed over.
const runWindow = 6

const stateCookie = "oauth_state"

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// LoginHandler resolves a user from a verified email. The caller is trusted to
// have verified the address (the OAuth callback goes through the same path).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}

		user, err := s.resolveUser(identity.Identity{Email: req.Email, Name: req.Name})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// GoogleLoginHandler redirects to the Google consent screen with a fresh
// state value stored in a short-lived cookie.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
		})
		http.Redirect(w, r, s.Identity.AuthURL(state), http.StatusTemporaryRedirect)
	}
}

// GoogleCallbackHandler completes the OAuth flow: state is checked against the
// cookie, the code is exchanged, and the resulting email resolves the user.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(stateCookie)
		if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
			respondError(w, apperror.ValidationFailed("state", "state mismatch"))
			return
		}

		id, err := s.Identity.Resolve(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			log.Error("OAuth code exchange failed", "error", err)
			respondError(w, apperror.ValidationFailed("code", "code exchange failed"))
			return
		}

		user, err := s.resolveUser(id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// resolveUser looks up or creates the account and applies the admin allowlist.
func (s *Server) resolveUser(id identity.Identity) (*tracker.User, error) {
	user, err := s.Store.GetOrCreateUser(id.Email, id.Name)
	if err != nil {
		return nil, err
	}
	if !user.IsPro && s.Cfg.IsAdmin(user.Email) {
		if err := s.Store.SetUserPro(user.ID, true); err != nil {
			return nil, err
		}
		user.IsPro = true
		log.Info("Granted pro via admin allowlist", "userID", user.ID)
	}
	return user, nil
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := queryUserID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		games, err := s.Store.ListGames(userID)
		if err != nil {
			respondError(w, err)
			return
		}
		if games == nil {
			games = []tracker.Game{}
		}
		respondJSON(w, http.StatusOK, games)
	}
}

func (s *Server) CreateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		gameID, err := s.Sessions.CreateGame(req.UserID, req.Name, req.DualTeam)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]int64{"game_id": gameID})
	}
}

// DeleteGameHandler always answers 200 for well-formed requests: a delete
// scoped to a game the user does not own matches nothing and leaks nothing.
func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		userID, err := queryUserID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := s.Sessions.DeleteGame(userID, gameID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (s *Server) UpdateRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		var req rosterRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if err := s.Sessions.UpdateRoster(gameID, req.Home, req.Away, req.DualTeam); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// ActionHandler applies one signed stat delta to a player and records it on
// the live session.
func (s *Server) ActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		var req actionRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if req.Direction == 0 {
			req.Direction = 1
		}
		if req.Direction != 1 && req.Direction != -1 {
			respondError(w, apperror.ValidationFailed("direction", "direction must be +1 or -1"))
			return
		}
		if len(req.Delta) == 0 {
			respondError(w, apperror.ValidationFailed("delta", "delta cannot be empty"))
			return
		}

		state, err := s.Store.LoadGame(gameID, stats.AllKeys)
		if err != nil {
			respondError(w, err)
			return
		}
		player, ok := state.PlayerByID(req.PlayerID)
		if !ok {
			respondError(w, apperror.NotFound("player", req.PlayerID))
			return
		}

		sess := s.Sessions.Session(req.UserID, gameID)
		ev, err := sess.Apply(player.ID, player.Name, player.Team, req.Delta, req.Direction)
		if err != nil {
			respondError(w, err)
			return
		}
		sess.SelectPlayer(player.ID)
		respondJSON(w, http.StatusOK, map[string]any{"event": ev, "can_undo": sess.CanUndo()})
	}
}

func (s *Server) UndoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		var req undoRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if _, err := s.Store.LoadGame(gameID, stats.AllKeys); err != nil {
			respondError(w, err)
			return
		}

		sess := s.Sessions.Session(req.UserID, gameID)
		ev, err := sess.Undo()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, undoResponse{Undone: ev, CanUndo: sess.CanUndo()})
	}
}

// SummaryHandler returns the live view: scoreline, runs, possession, leaders,
// takeaways and the most recent plays.
func (s *Server) SummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		userID, err := queryUserID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		state, err := s.Store.LoadGame(gameID, stats.AllKeys)
		if err != nil {
			respondError(w, err)
			return
		}

		home := state.HomeRoster()
		away := state.AwayRoster()
		sess := s.Sessions.Session(userID, gameID)

		resp := summaryResponse{
			GameID:     gameID,
			DualTeam:   state.DualTeam(),
			HomeScore:  stats.TeamScore(home, state.Lines),
			AwayScore:  stats.TeamScore(away, state.Lines),
			Period:     sess.Period(),
			Possession: sess.Possession(),
			HomeRun:    sess.Run(stats.TeamHome, runWindow),
			AwayRun:    sess.Run(stats.TeamAway, runWindow),
			Takeaways:  stats.Takeaways(home, away, state.Lines),
			HomeLead:   stats.RosterLeaders(home, state.Lines),
			Recent:     sess.RecentPlays(10),
			Selected:   sess.SelectedPlayer(),
			CanUndo:    sess.CanUndo(),
		}
		if resp.DualTeam {
			resp.AwayLead = stats.RosterLeaders(away, state.Lines)
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) BoxScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		state, err := s.Store.LoadGame(gameID, stats.AllKeys)
		if err != nil {
			respondError(w, err)
			return
		}
		advanced := r.URL.Query().Get("advanced") == "true"

		home := state.HomeRoster()
		away := state.AwayRoster()
		resp := boxScoreResponse{
			GameID:   gameID,
			DualTeam: state.DualTeam(),
			Columns:  stats.BoxColumns,
			Home:     stats.BuildBoxRows(home, state.Lines, advanced),
			Totals:   []stats.TotalsRow{stats.BuildTotalsRow(stats.TeamHome, home, state.Lines)},
		}
		if resp.DualTeam {
			resp.Away = stats.BuildBoxRows(away, state.Lines, advanced)
			resp.Totals = append(resp.Totals, stats.BuildTotalsRow(stats.TeamAway, away, state.Lines))
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) LogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		userID, err := queryUserID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		sess := s.Sessions.Session(userID, gameID)
		respondJSON(w, http.StatusOK, sess.RecentPlays(limit))
	}
}

// PlayerHandler returns one player's line, derived numbers and recent plays.
func (s *Server) PlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		playerID, err := pathID(r, "playerID")
		if err != nil {
			respondError(w, err)
			return
		}
		userID, err := queryUserID(r)
		if err != nil {
			respondError(w, err)
			return
		}

		state, err := s.Store.LoadGame(gameID, stats.AllKeys)
		if err != nil {
			respondError(w, err)
			return
		}
		player, ok := state.PlayerByID(playerID)
		if !ok {
			respondError(w, apperror.NotFound("player", playerID))
			return
		}

		line := state.Lines[player.Name]
		rows := stats.BuildBoxRows([]string{player.Name}, state.Lines, true)
		sess := s.Sessions.Session(userID, gameID)

		respondJSON(w, http.StatusOK, playerResponse{
			Player:  player,
			Line:    line,
			Box:     rows[0],
			Recent:  filterPlayerEvents(sess.Log(), playerID, 50),
			EffFG:   stats.EffectiveFieldGoalPct(line),
			AstTov:  stats.AssistTurnoverRatio(line),
			Points:  stats.Points(line),
			Rebound: stats.Rebounds(line),
		})
	}
}

func (s *Server) ExportCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, rows, _, err := s.exportRows(r)
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=boxscore-%d.csv", gameID))
		if err := export.CSV(w, rows); err != nil {
			log.Error("CSV export failed", "error", err, "gameID", gameID)
			return
		}
		s.Metrics.IncExports("csv")
	}
}

func (s *Server) ExportPDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, rows, totals, err := s.exportRows(r)
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=boxscore-%d.pdf", gameID))
		title := fmt.Sprintf("Game %d box score", gameID)
		if err := export.PDF(w, title, "", rows, totals); err != nil {
			log.Error("PDF export failed", "error", err, "gameID", gameID)
			return
		}
		s.Metrics.IncExports("pdf")
	}
}

// exportRows gates exports on the pro plan and assembles the full-roster rows.
func (s *Server) exportRows(r *http.Request) (int64, []stats.BoxRow, []stats.TotalsRow, error) {
	gameID, err := pathID(r, "id")
	if err != nil {
		return 0, nil, nil, err
	}
	userID, err := queryUserID(r)
	if err != nil {
		return 0, nil, nil, err
	}
	pro, err := s.Store.IsUserPro(userID)
	if err != nil {
		return 0, nil, nil, err
	}
	if !pro {
		return 0, nil, nil, errProRequired
	}

	state, err := s.Store.LoadGame(gameID, stats.AllKeys)
	if err != nil {
		return 0, nil, nil, err
	}

	names := make([]string, 0, len(state.Roster))
	for _, p := range state.Roster {
		names = append(names, p.Name)
	}
	rows := stats.BuildBoxRows(names, state.Lines, false)

	totals := []stats.TotalsRow{stats.BuildTotalsRow(stats.TeamHome, state.HomeRoster(), state.Lines)}
	if state.DualTeam() {
		totals = append(totals, stats.BuildTotalsRow(stats.TeamAway, state.AwayRoster(), state.Lines))
	}
	return gameID, rows, totals, nil
}

// NotifyHandler posts the final game summary to the configured channel.
func (s *Server) NotifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		userID, err := queryUserID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		state, err := s.Store.LoadGame(gameID, stats.AllKeys)
		if err != nil {
			respondError(w, err)
			return
		}

		home := state.HomeRoster()
		away := state.AwayRoster()
		summary := notifier.GameSummary{
			GameName:    s.gameName(userID, gameID),
			HomeScore:   stats.TeamScore(home, state.Lines),
			AwayScore:   stats.TeamScore(away, state.Lines),
			Takeaways:   stats.Takeaways(home, away, state.Lines),
			HomeLeaders: stats.RosterLeaders(home, state.Lines),
			DualTeam:    state.DualTeam(),
		}
		if summary.DualTeam {
			summary.AwayLeaders = stats.RosterLeaders(away, state.Lines)
		}

		if err := s.Notifier.SendGameSummary(summary, isDryRunFromContext(r)); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}

// BillingConfirmHandler flips the pro flag after an upgrade is confirmed
// out-of-band. No payment protocol lives here.
func (s *Server) BillingConfirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req billingRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if req.UserID == 0 {
			respondError(w, apperror.ValidationFailed("user_id", "user_id is required"))
			return
		}
		if err := s.Store.SetUserPro(req.UserID, true); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"is_pro": true})
	}
}

func (s *Server) ProStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}
		pro, err := s.Store.IsUserPro(userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"is_pro": pro})
	}
}

// filterPlayerEvents returns the player's logged events, newest first.
func filterPlayerEvents(events []session.Event, playerID int64, limit int) []session.Event {
	out := make([]session.Event, 0, limit)
	for i := len(events) - 1; i >= 0 && len(out) < limit; i-- {
		if events[i].PlayerID == playerID {
			out = append(out, events[i])
		}
	}
	return out
}

// gameName looks the display name up from the owner's game list; exports and
// notifications survive a missing name.
func (s *Server) gameName(userID, gameID int64) string {
	games, err := s.Store.ListGames(userID)
	if err != nil {
		return ""
	}
	for _, g := range games {
		if g.ID == gameID {
			return g.Name
		}
	}
	return ""
}
