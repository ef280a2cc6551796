package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag string
	rootCmd  = &cobra.Command{
		Use:   "schedctl",
		Short: "CLI client for the scheduler service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Scheduler service base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")

	connectCmd := &cobra.Command{
		Use:   "connect",
		Short: "Store a calendar credential for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, _ := cmd.Flags().GetString("provider")
			token, _ := cmd.Flags().GetString("token")
			timeZone, _ := cmd.Flags().GetString("timezone")
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runConnect(apiFlag, userFlag, provider, token, timeZone, os.Stdout)
		},
	}
	connectCmd.Flags().StringP("provider", "p", "google", "Calendar provider (google, ics)")
	connectCmd.Flags().StringP("token", "t", "", "Access token or secret feed URL (required)")
	connectCmd.Flags().String("timezone", "", "User's IANA timezone, e.g. America/New_York")
	_ = connectCmd.MarkFlagRequired("token")
	rootCmd.AddCommand(connectCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show a user's calendar connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runStatus(apiFlag, userFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(statusCmd)

	disconnectCmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Remove a user's calendar credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runDisconnect(apiFlag, userFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(disconnectCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze availability for a beauty service",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _ := cmd.Flags().GetString("service")
			date, _ := cmd.Flags().GetString("date")
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runAnalyze(apiFlag, userFlag, service, date, os.Stdout)
		},
	}
	analyzeCmd.Flags().StringP("service", "s", "", "Service type, e.g. haircut (required)")
	analyzeCmd.Flags().StringP("date", "d", "", "Target date YYYY-MM-DD (optional; omit for a 7-day search)")
	_ = analyzeCmd.MarkFlagRequired("service")
	rootCmd.AddCommand(analyzeCmd)

	freebusyCmd := &cobra.Command{
		Use:   "freebusy",
		Short: "Show busy intervals in a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeMin, _ := cmd.Flags().GetString("min")
			timeMax, _ := cmd.Flags().GetString("max")
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runFreeBusy(apiFlag, userFlag, timeMin, timeMax, os.Stdout)
		},
	}
	freebusyCmd.Flags().String("min", "", "Range start, RFC 3339 (required)")
	freebusyCmd.Flags().String("max", "", "Range end, RFC 3339 (required)")
	_ = freebusyCmd.MarkFlagRequired("min")
	_ = freebusyCmd.MarkFlagRequired("max")
	rootCmd.AddCommand(freebusyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
