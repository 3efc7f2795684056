package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
	"github.com/debnit/MsmeBazaar-sub001/internal/logger"
)

const (
	PromptReport     = "Report by recommended action"
	PromptDumpToFile = "Dump matches to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one matching pass for a buyer against a set of candidate listings",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("buyer", "b", "", "JSON file with the buyer profile")
	runCmd.Flags().StringP("listings", "l", "", "JSON file with the candidate listings")
	runCmd.Flags().IntP("limit", "n", 10, "maximum number of matches to return")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the result and exit without the interactive prompt")

	runCmd.MarkFlagRequired("buyer")
	runCmd.MarkFlagRequired("listings")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the msme-matchmaker", zap.String("version", version))

	if config == nil {
		zlog.Fatal("config is required")
	}

	buyer, err := loadBuyer(cmd.Flag("buyer").Value.String())
	if err != nil {
		zlog.Fatal("loading buyer profile", zap.Error(err))
	}

	listings, err := loadListings(cmd.Flag("listings").Value.String())
	if err != nil {
		zlog.Fatal("loading candidate listings", zap.Error(err))
	}

	zlog.Info("loaded match request",
		zap.String("buyer_id", buyer.ID),
		zap.Int("candidates", len(listings)),
	)

	rt, err := buildRuntime(config, zlog)
	if err != nil {
		zlog.Fatal("building matching engine", zap.Error(err))
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		zlog.Fatal("reading limit flag", zap.Error(err))
	}

	response, err := rt.engine.FindMatches(ctx, buyer, listings, limit)
	if err != nil {
		zlog.Fatal("matching failed", zap.Error(err))
	}

	printMatches(zlog, buyer.ID, response)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		dump(zlog, response)
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, zlog, response); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, zlog *zap.Logger, response *domain.MatchingResponse) error {
	switch action {
	case PromptReport:
		pretty, _ := json.MarshalIndent(response.ReportByAction(), "", "  ")
		zlog.Info(string(pretty), zap.Int("match count", response.Len()))
		return nil
	case PromptDumpToFile:
		return dump(zlog, response)
	case PromptExit:
		zlog.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printMatches(zlog *zap.Logger, buyerID string, response *domain.MatchingResponse) {
	zlog.Info("matching completed",
		append(logger.MatchFields(buyerID, string(response.Methodology)),
			zap.Int("matches", response.Len()),
			zap.Int("total_before_truncation", response.TotalMatches),
			zap.Float64("confidence", response.Confidence),
			zap.Duration("processing_time", response.ProcessingTime),
		)...,
	)

	for i, m := range response.Matches {
		zlog.Info("match",
			zap.Int("rank", i+1),
			zap.String("business_id", m.BusinessID),
			zap.String("business_name", m.BusinessName),
			zap.Float64("score", m.Score),
			zap.String("risk", string(m.RiskAssessment)),
			zap.String("action", string(m.RecommendedAction)),
			zap.Strings("reasons", m.Reasons),
		)
	}

	for _, rec := range response.Recommendations {
		zlog.Info("recommendation", zap.String("text", rec))
	}
}

func dump(zlog *zap.Logger, response *domain.MatchingResponse) error {
	filename, err := response.DumpToTmpFile()
	if err != nil {
		return fmt.Errorf("dump matches to file: %w", err)
	}
	zlog.Info("dumping result to file", zap.String("filename", filename))
	return nil
}

func loadBuyer(path string) (*domain.BuyerProfile, error) {
	var buyer domain.BuyerProfile
	if err := readJSONFile(path, &buyer); err != nil {
		return nil, err
	}
	if err := buyer.Validate(); err != nil {
		return nil, err
	}
	return &buyer, nil
}

func loadListings(path string) ([]*domain.BusinessListing, error) {
	var listings []*domain.BusinessListing
	if err := readJSONFile(path, &listings); err != nil {
		return nil, err
	}
	for _, listing := range listings {
		if err := listing.Validate(); err != nil {
			return nil, err
		}
	}
	return listings, nil
}

func readJSONFile(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(target)
}
