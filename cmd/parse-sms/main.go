package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dvloznov/sms-ledger/internal/logger"
	"github.com/dvloznov/sms-ledger/internal/parser"
	"github.com/dvloznov/sms-ledger/internal/runner"
	"github.com/dvloznov/sms-ledger/internal/sink"
	"github.com/dvloznov/sms-ledger/internal/smsbackup"
)

var (
	senderName string
	startDate  string
	outputPath string
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "parse-sms [backup.xml]",
	Short: "Extract mobile-money transactions from an SMS backup",
	Long: `parse-sms reads an Android SMS backup XML file, runs every message
through the mobile-money notification parser and writes the recognized
transactions as JSON lines.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&senderName, "sender", "s", "", "Only parse messages from this sender (e.g. 'MPESA')")
	rootCmd.Flags().StringVarP(&startDate, "from", "f", "", "Only parse messages from this date onwards (format: YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "Output file for JSON lines ('-' for stdout)")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of parse workers")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log why individual messages were rejected")
}

func run(cmd *cobra.Command, args []string) error {
	log := logger.New()
	if !verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	filter := smsbackup.Filter{Sender: senderName}
	if startDate != "" {
		from, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return fmt.Errorf("invalid --from date (use YYYY-MM-DD): %w", err)
		}
		filter.From = from
	}

	messages, err := smsbackup.Read(args[0], filter)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	p := parser.New()
	if verbose {
		p = parser.NewWithLogger(log)
	}

	ctx := logger.WithContext(cmd.Context(), log)
	stats, err := runner.New(p, sink.NewJSONL(out), workers, log).Run(ctx, messages)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", stats.RunID).
		Int("messages", stats.Messages).
		Int("records", stats.Records).
		Msg("done")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
