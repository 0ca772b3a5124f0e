package tracker

import (
	"database/sql"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/courtlog/hoopstats/internal/apperror"
	"github.com/courtlog/hoopstats/internal/stats"
)

// New creates a new TrackerStore backed by the given database.
func New(db *sql.DB) TrackerStore {
	return &store{
		db: db,
	}
}

// GetOrCreateUser resolves a user by email, inserting on first login. The name
// is only backfilled when the stored one is NULL, so a user's chosen display
// name survives later logins.
func (s *store) GetOrCreateUser(email, name string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, apperror.Storage("begin user transaction", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec("INSERT INTO users (email, name, is_pro) VALUES (?, ?, 0)", email, nullableString(name))
		if err != nil {
			return nil, apperror.Storage("insert user", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, apperror.Storage("read user id", err)
		}
		log.Info("Created user", "userID", id, "email", email)
	case err != nil:
		return nil, apperror.Storage("look up user", err)
	default:
		if name != "" {
			if _, err := tx.Exec("UPDATE users SET name = COALESCE(name, ?) WHERE id = ?", name, id); err != nil {
				return nil, apperror.Storage("backfill user name", err)
			}
		}
	}

	user, err := scanUser(tx.QueryRow("SELECT id, email, name, is_pro, created_at FROM users WHERE id = ?", id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperror.Storage("commit user transaction", err)
	}
	return user, nil
}

func (s *store) SetUserPro(userID int64, pro bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag := 0
	if pro {
		flag = 1
	}
	if _, err := s.db.Exec("UPDATE users SET is_pro = ? WHERE id = ?", flag, userID); err != nil {
		return apperror.Storage("set pro flag", err)
	}
	log.Info("Updated pro flag", "userID", userID, "is_pro", pro)
	return nil
}

func (s *store) IsUserPro(userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pro int
	err := s.db.QueryRow("SELECT is_pro FROM users WHERE id = ?", userID).Scan(&pro)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperror.Storage("read pro flag", err)
	}
	return pro == 1, nil
}

// ListGames returns the user's games, newest first.
func (s *store) ListGames(userID int64) ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, user_id, name, created_at FROM games WHERE user_id = ? ORDER BY id DESC",
		userID,
	)
	if err != nil {
		return nil, apperror.Storage("list games", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		var name sql.NullString
		if err := rows.Scan(&g.ID, &g.UserID, &name, &g.CreatedAt); err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		g.Name = name.String
		games = append(games, g)
	}
	return games, nil
}

func (s *store) CreateGame(userID int64, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO games (user_id, name) VALUES (?, ?)", userID, name)
	if err != nil {
		return 0, apperror.Storage("create game", err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.Storage("read game id", err)
	}
	log.Info("Created game", "gameID", gameID, "userID", userID, "name", name)
	return gameID, nil
}

// DeleteGame removes a game owned by userID. A delete for a game owned by a
// different user matches no rows and returns nil, so callers cannot probe for
// other users' game ids.
func (s *store) DeleteGame(userID, gameID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM games WHERE id = ? AND user_id = ?", gameID, userID); err != nil {
		return apperror.Storage("delete game", err)
	}
	log.Info("Deleted game", "gameID", gameID, "userID", userID)
	return nil
}

// SetRoster reconciles the stored player set to exactly entries: new names are
// inserted, stored names missing from entries are deleted (cascading to their
// counters), surviving names that changed sides get their team updated, and
// every surviving player gets a zeroed counter row per key. Existing counter
// values are never touched, so re-submitting an unchanged roster is a no-op.
func (s *store) SetRoster(gameID int64, entries []RosterEntry, keys []stats.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return apperror.Storage("begin roster transaction", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT name, team FROM players WHERE game_id = ?", gameID)
	if err != nil {
		return apperror.Storage("load existing roster", err)
	}
	existing := make(map[string]string)
	for rows.Next() {
		var name, team string
		if err := rows.Scan(&name, &team); err != nil {
			rows.Close()
			return apperror.Storage("scan player row", err)
		}
		existing[name] = team
	}
	rows.Close()

	wanted := make(map[string]bool, len(entries))
	for _, e := range entries {
		wanted[e.Name] = true
	}

	for name := range existing {
		if !wanted[name] {
			if _, err := tx.Exec("DELETE FROM players WHERE game_id = ? AND name = ?", gameID, name); err != nil {
				return apperror.Storage("delete player", err)
			}
		}
	}

	for _, e := range entries {
		team, ok := existing[e.Name]
		if !ok {
			if _, err := tx.Exec(
				"INSERT INTO players (game_id, name, team) VALUES (?, ?, ?)",
				gameID, e.Name, string(e.Team),
			); err != nil {
				return apperror.Storage("insert player", err)
			}
			continue
		}
		// A surviving name can still switch sides; keep the stored team current.
		if team != string(e.Team) {
			if _, err := tx.Exec(
				"UPDATE players SET team = ? WHERE game_id = ? AND name = ?",
				string(e.Team), gameID, e.Name,
			); err != nil {
				return apperror.Storage("move player", err)
			}
		}
	}

	// Seed a zero row per surviving player and key; existing rows keep their
	// values.
	playerRows, err := tx.Query("SELECT id FROM players WHERE game_id = ? ORDER BY id", gameID)
	if err != nil {
		return apperror.Storage("load seeded roster", err)
	}
	var playerIDs []int64
	for playerRows.Next() {
		var id int64
		if err := playerRows.Scan(&id); err != nil {
			playerRows.Close()
			return apperror.Storage("scan player id", err)
		}
		playerIDs = append(playerIDs, id)
	}
	playerRows.Close()

	for _, pid := range playerIDs {
		for _, k := range keys {
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO stats (game_id, player_id, stat_key, stat_value) VALUES (?, ?, ?, 0)",
				gameID, pid, string(k),
			); err != nil {
				return apperror.Storage("seed stat row", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.Storage("commit roster transaction", err)
	}
	log.Info("Roster reconciled", "gameID", gameID, "players", len(entries))
	return nil
}

// LoadGame returns the roster in insertion order plus a complete counter line
// per player. Stat rows missing for a requested key default to zero.
func (s *store) LoadGame(gameID int64, keys []stats.Key) (*GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM games WHERE id = ?)", gameID).Scan(&exists); err != nil {
		return nil, apperror.Storage("check game", err)
	}
	if !exists {
		return nil, apperror.NotFound("game", gameID)
	}

	rows, err := s.db.Query(
		"SELECT id, game_id, name, team FROM players WHERE game_id = ? ORDER BY id",
		gameID,
	)
	if err != nil {
		return nil, apperror.Storage("load players", err)
	}
	defer rows.Close()

	state := &GameState{
		IDByName: make(map[string]int64),
		Lines:    make(map[string]stats.Line),
	}
	for rows.Next() {
		var p Player
		var team string
		if err := rows.Scan(&p.ID, &p.GameID, &p.Name, &team); err != nil {
			return nil, apperror.Storage("scan player row", err)
		}
		p.Team = stats.Team(team)
		state.Roster = append(state.Roster, p)
		state.IDByName[p.Name] = p.ID
	}

	for _, p := range state.Roster {
		statRows, err := s.db.Query(
			"SELECT stat_key, stat_value FROM stats WHERE game_id = ? AND player_id = ?",
			gameID, p.ID,
		)
		if err != nil {
			return nil, apperror.Storage("load stat rows", err)
		}
		var line stats.Line
		for statRows.Next() {
			var key string
			var value int
			if err := statRows.Scan(&key, &value); err != nil {
				statRows.Close()
				return nil, apperror.Storage("scan stat row", err)
			}
			line.Add(stats.Key(key), value)
		}
		statRows.Close()
		state.Lines[p.Name] = line
	}

	return state, nil
}

// ApplyChange is the sole counter mutation primitive: each key in delta gets
// direction*delta[key] added to its stored value. Rows are never created here;
// the key must exist from roster seeding. No clamping at zero is applied.
func (s *store) ApplyChange(gameID, playerID int64, delta stats.Delta, direction int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return apperror.Storage("begin change transaction", err)
	}
	defer tx.Rollback()

	for _, k := range stats.AllKeys {
		v, ok := delta[k]
		if !ok || v == 0 {
			continue
		}
		if _, err := tx.Exec(
			"UPDATE stats SET stat_value = stat_value + ? WHERE game_id = ? AND player_id = ? AND stat_key = ?",
			direction*v, gameID, playerID, string(k),
		); err != nil {
			return apperror.Storage("apply stat change", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.Storage("commit change transaction", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var name sql.NullString
	var pro int
	if err := row.Scan(&u.ID, &u.Email, &name, &pro, &u.CreatedAt); err != nil {
		return nil, apperror.Storage("scan user row", err)
	}
	u.Name = name.String
	u.IsPro = pro == 1
	return &u, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
