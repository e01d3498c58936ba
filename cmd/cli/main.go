package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "voicebank-cli",
		Short: "VoiceBank CLI tool",
		Long:  `A command line interface for interacting with the VoiceBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the VoiceBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication operations",
	}

	sendOTPCmd := &cobra.Command{
		Use:   "send-otp <phone>",
		Short: "Request a one-time code for a phone number",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/auth/send-otp", map[string]any{"phone": args[0]})
		},
	}

	verifyOTPCmd := &cobra.Command{
		Use:   "verify-otp <phone> <code>",
		Short: "Verify a one-time code",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/auth/verify-otp", map[string]any{"phone": args[0], "otp": args[1]})
		},
	}

	registerCmd := &cobra.Command{
		Use:   "register <phone> <name> <pin>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/auth/register", map[string]any{
				"phone": args[0],
				"name":  args[1],
				"pin":   args[2],
			})
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <phone> <pin>",
		Short: "Login with phone and PIN",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/auth/login", map[string]any{"phone": args[0], "pin": args[1]})
		},
	}

	authCmd.AddCommand(sendOTPCmd, verifyOTPCmd, registerCmd, loginCmd)
	rootCmd.AddCommand(authCmd)

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Get an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/accounts/" + args[0] + "/balance")
		},
	}
	rootCmd.AddCommand(balanceCmd)

	var historyLimit int
	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "List an account's recent transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/accounts/%s/transactions?limit=%d", args[0], historyLimit))
		},
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of transactions to return")
	rootCmd.AddCommand(historyCmd)

	transferCmd := &cobra.Command{
		Use:   "transfer <sender-account-id> <receiver-phone> <amount>",
		Short: "Transfer money to the phone's owner",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/transfer", map[string]any{
				"user_id":  args[0],
				"to_phone": args[1],
				"amount":   json.Number(args[2]),
			})
		},
	}
	rootCmd.AddCommand(transferCmd)

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func postJSON(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, string(body))
		return
	}

	fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}
