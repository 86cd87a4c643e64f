package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aqlanhadi/pokertrack/extractor"
	"github.com/aqlanhadi/pokertrack/extractor/currency"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration (from .pokertrack.yaml)
const defaultConfigYAML = `
currency:
  reference: USD
  symbols:
    $: USD
    €: EUR
    ¥: CNY
  rates:
    EUR: 1.18
    CNY: 0.15
  # rates_url: https://example.com/latest?base=USD
report:
  timezone: ""
  patterns:
    amount: '(\$|€|¥)([0-9,]+(\.[0-9]{1,2})?)'
    start_time_marker: Tournament started
    start_time: '(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})'
    start_time_format: '2006/01/02 15:04:05'
    players_label: Players
    prize_pool_label: Total Prize Pool
    chips_marker: chips
    reentries:
      - You made (\d+) re-entries
      - re-entered (\d+) times
      - You made (\d+)-entries
filters:
  tags:
    - JOPT
    - WSOP
    - GGMasters
    - Zodiac
    - Step to
    - Mega to
    - Last Chance to
    - Global MILLION
    - Turbo
    - Hyper
    - Bounty
    - WSOPC
    - "#"
    - Seats
    - Flip & Go`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "pokertrack [path]",
		Short: "Parse tournament summaries into a results table",
		Long:  `pokertrack is a utility to extract structured results out of poker tournament summary exports`,
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				handler(extractCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.pokertrack.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".pokertrack")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// newProcessor builds the processor from the currency configuration,
// refreshing rates from currency.rates_url when one is set. A failed refresh
// keeps the configured table.
func newProcessor(ctx context.Context) (*extractor.Processor, error) {
	rates, err := currency.LoadConfig()
	if err != nil {
		return nil, err
	}
	if url := viper.GetString("currency.rates_url"); url != "" {
		if err := rates.Refresh(ctx, url); err != nil {
			log.Printf("Warning: rate refresh failed, using configured rates: %v", err)
		}
	}
	return extractor.NewProcessor(rates), nil
}
