package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(boxscoreCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Resolve a user by email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"email": %q}`, args[0])
		return performPostRequest("/login", body)
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the user's games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/games?user_id=%d", userID))
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [gameID]",
	Short: "Show the live summary for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/games/%s/summary?user_id=%d", args[0], userID))
	},
}

var boxscoreCmd = &cobra.Command{
	Use:   "boxscore [gameID]",
	Short: "Show the box score for a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/games/%s/boxscore?advanced=true", args[0]))
	},
	Args: cobra.ExactArgs(1),
}

var logCmd = &cobra.Command{
	Use:   "log [gameID]",
	Short: "Show the recent play-by-play log for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/games/%s/log?user_id=%d", args[0], userID))
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo [gameID]",
	Short: "Undo the most recent stat change in a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"user_id": %d}`, userID)
		return performPostRequest(fmt.Sprintf("/games/%s/undo", args[0]), body)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
