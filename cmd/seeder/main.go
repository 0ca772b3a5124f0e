package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtlog/hoopstats/internal/database"
	"github.com/courtlog/hoopstats/internal/stats"
	"github.com/courtlog/hoopstats/internal/tracker"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken, migrationsDir string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	primaryURL = os.Getenv("TURSO_PRIMARY_URL")
	authToken = os.Getenv("TURSO_AUTH_TOKEN")
	migrationsDir = os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	return dbName, primaryURL, authToken, migrationsDir
}

// scoringDeltas are the tracked actions the seeder picks from.
var scoringDeltas = []stats.Delta{
	{stats.Key2PM: 1, stats.Key2PA: 1},
	{stats.Key2PA: 1},
	{stats.Key3PM: 1, stats.Key3PA: 1},
	{stats.Key3PA: 1},
	{stats.KeyFTM: 1, stats.KeyFTA: 1},
	{stats.KeyOREB: 1},
	{stats.KeyDREB: 1},
	{stats.KeyAST: 1},
	{stats.KeyTOV: 1},
	{stats.KeySTL: 1},
	{stats.KeyBLK: 1},
	{stats.KeyPF: 1},
}

func main() {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken, migrationsDir := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken, migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := tracker.New(db)

	user, err := store.GetOrCreateUser("demo@hoopstats.dev", "Demo Coach")
	if err != nil {
		log.Fatalf("Failed to create demo user: %s", err)
	}
	log.Info("Ensured demo user exists.", "userID", user.ID)

	const numGames = 3
	const eventsPerGame = 150

	startTime := time.Now()
	for g := 1; g <= numGames; g++ {
		gameID, err := store.CreateGame(user.ID, fmt.Sprintf("Seeded game %d", g))
		if err != nil {
			log.Fatalf("Failed to create game: %s", err)
		}

		entries := make([]tracker.RosterEntry, 0, 10)
		for i := 1; i <= 5; i++ {
			entries = append(entries, tracker.RosterEntry{Name: fmt.Sprintf("Player %d", i), Team: stats.TeamHome})
			entries = append(entries, tracker.RosterEntry{Name: fmt.Sprintf("Opponent %d", i), Team: stats.TeamAway})
		}
		if err := store.SetRoster(gameID, entries, stats.AllKeys); err != nil {
			log.Fatalf("Failed to seed roster: %s", err)
		}

		state, err := store.LoadGame(gameID, stats.AllKeys)
		if err != nil {
			log.Fatalf("Failed to load seeded game: %s", err)
		}

		for i := 0; i < eventsPerGame; i++ {
			player := state.Roster[rand.Intn(len(state.Roster))]
			delta := scoringDeltas[rand.Intn(len(scoringDeltas))]
			if err := store.ApplyChange(gameID, player.ID, delta, 1); err != nil {
				log.Fatalf("Failed to apply seeded stat change: %s", err)
			}
		}
		log.Info("Seeded game", "gameID", gameID, "events", eventsPerGame)
	}

	log.Info("Successfully seeded demo data.", "games", numGames, "duration", time.Since(startTime))
}
