package session

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/google/uuid"
)

// Apply records a stat change for a player and writes it through to the store.
// Direction +1 is a normal tracked action: it appends a play-by-play entry and
// pushes the event on the undo stack. Direction -1 is a manual correction
// (minus button): it is undoable but produces no log entry.
func (s *Session) Apply(playerID int64, playerName string, team stats.Team, delta stats.Delta, direction int) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ApplyChange(s.GameID, playerID, delta, direction); err != nil {
		return Event{}, err
	}

	ev := Event{
		ID:        uuid.NewString(),
		At:        time.Now(),
		Period:    s.period,
		Team:      team,
		PlayerID:  playerID,
		Player:    playerName,
		Label:     stats.DeltaLabel(delta),
		Points:    stats.DeltaPoints(delta),
		Delta:     delta,
		Direction: direction,
		Logged:    direction > 0,
	}

	if ev.Logged {
		s.events = append(s.events, ev)
		if len(s.events) > maxLogEvents {
			s.events = s.events[len(s.events)-maxLogEvents:]
		}
	}
	s.undo = append(s.undo, ev)
	if len(s.undo) > maxUndoDepth {
		s.undo = s.undo[len(s.undo)-maxUndoDepth:]
	}

	s.metrics.IncStatEvents()
	log.Debug("Applied stat change",
		"sessionID", s.ID, "gameID", s.GameID, "player", playerName,
		"label", ev.Label, "direction", direction)
	return ev, nil
}

// Undo reverts the most recent change: the inverse delta is written to the
// store and the matching play-by-play entry, if one was produced, is removed.
// An empty undo stack is a no-op and returns nil.
func (s *Session) Undo() (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return nil, nil
	}
	ev := s.undo[len(s.undo)-1]

	if err := s.store.ApplyChange(s.GameID, ev.PlayerID, ev.Delta, -ev.Direction); err != nil {
		return nil, err
	}
	s.undo = s.undo[:len(s.undo)-1]

	if ev.Logged {
		for i := len(s.events) - 1; i >= 0; i-- {
			if s.events[i].ID == ev.ID {
				s.events = append(s.events[:i], s.events[i+1:]...)
				break
			}
		}
	}

	s.metrics.IncUndos()
	log.Debug("Undid stat change", "sessionID", s.ID, "gameID", s.GameID, "label", ev.Label)
	return &ev, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// Log returns a copy of the play-by-play log in chronological order.
func (s *Session) Log() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// RecentPlays returns up to n logged events, newest first.
func (s *Session) RecentPlays(n int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, 0, n)
	for i := len(s.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.events[i])
	}
	return out
}

// Run returns the points scored by team among the last window scoring plays.
func (s *Session) Run(team stats.Team, window int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	plays := make([]stats.PlayEvent, len(s.events))
	for i, ev := range s.events {
		plays[i] = stats.PlayEvent{Team: ev.Team, Points: ev.Points}
	}
	return stats.Run(plays, team, window)
}

// Period returns the current period.
func (s *Session) Period() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

// SetPeriod sets the current period. Values below 1 are ignored.
func (s *Session) SetPeriod(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p >= 1 {
		s.period = p
	}
}

// SelectPlayer marks a roster member as the target for subsequent quick
// actions. Selection is display state only; Apply always names its player.
func (s *Session) SelectPlayer(playerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = playerID
}

// SelectedPlayer returns the selected player id, zero when none is selected.
func (s *Session) SelectedPlayer() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Possession returns the team currently holding the ball.
func (s *Session) Possession() stats.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.possession
}

// TogglePossession flips possession and returns the new holder.
func (s *Session) TogglePossession() stats.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.possession == stats.TeamHome {
		s.possession = stats.TeamAway
	} else {
		s.possession = stats.TeamHome
	}
	return s.possession
}
