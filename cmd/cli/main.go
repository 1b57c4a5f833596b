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
		Use:   "finbook-cli",
		Short: "Finbook CLI tool",
		Long:  `A command line interface for interacting with the Finbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Finbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(movementCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var kind, creditLimit, openingBalance string
	openCmd := &cobra.Command{
		Use:   "open [name]",
		Short: "Open a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"name":            args[0],
				"kind":            kind,
				"credit_limit":    creditLimit,
				"opening_balance": openingBalance,
			}
			return postJSON("/api/v1/accounts/", body)
		},
	}
	openCmd.Flags().StringVar(&kind, "kind", "bank", "Account kind (bank, cash, debit, credit)")
	openCmd.Flags().StringVar(&creditLimit, "credit-limit", "0", "Credit limit for credit accounts")
	openCmd.Flags().StringVar(&openingBalance, "opening-balance", "0", "Opening balance")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/accounts/" + args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/accounts/")
		},
	}

	archiveCmd := &cobra.Command{
		Use:   "archive [id]",
		Short: "Archive an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteJSON("/api/v1/accounts/" + args[0])
		},
	}

	entriesCmd := &cobra.Command{
		Use:   "entries [id]",
		Short: "List ledger entries of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/accounts/" + args[0] + "/entries")
		},
	}

	cmd.AddCommand(openCmd, getCmd, listCmd, archiveCmd, entriesCmd)

	return cmd
}

func movementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movement",
		Short: "Record movements",
	}

	for _, kind := range []string{"income", "expense", "investment", "credit-usage"} {
		kind := kind
		var ref, notes string
		sub := &cobra.Command{
			Use:   kind + " [account-id] [amount]",
			Short: "Record " + kind,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				body := map[string]string{
					"account_id": args[0],
					"amount":     args[1],
					"notes":      notes,
				}
				if kind == "income" {
					body["source_ref"] = ref
				} else {
					body["category_ref"] = ref
				}
				return postJSON("/api/v1/movements/"+kind, body)
			},
		}
		sub.Flags().StringVar(&ref, "ref", "", "Source or category reference")
		sub.Flags().StringVar(&notes, "notes", "", "Free-form notes")
		cmd.AddCommand(sub)
	}

	return cmd
}

func transferCmd() *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "transfer [from-id] [to-id] [amount]",
		Short: "Move funds between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          args[2],
				"notes":           notes,
			}
			return postJSON("/api/v1/transfers", body)
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record operations",
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/records/" + args[0])
		},
	}

	var notes string
	reverseCmd := &cobra.Command{
		Use:   "reverse [id]",
		Short: "Reverse a record, restoring every balance it touched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/records/"+args[0]+"/reverse", map[string]string{"notes": notes})
		},
	}
	reverseCmd.Flags().StringVar(&notes, "notes", "", "Reason for the reversal")

	cmd.AddCommand(getCmd, reverseCmd)

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that every balance matches its entry sum",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/ledger/consistency")
		},
	}

	cmd.AddCommand(consistencyCmd)

	return cmd
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return printResponse(resp)
}

func postJSON(path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return printResponse(resp)
}

func deleteJSON(path string) error {
	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Println(string(body))
		return nil
	}

	printJSON(parsed)

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}

	fmt.Println(string(out))
}
