package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JustUsingaWebsite/data-compare/internal/config"
	"github.com/JustUsingaWebsite/data-compare/internal/extract"
	"github.com/JustUsingaWebsite/data-compare/internal/logging"
	"github.com/JustUsingaWebsite/data-compare/internal/runner"
)

const banner = `
----------------------------------------------------------------------------
                      Data Compare for Check The Same Key

 Description: This tool extracts data from an origin file and compares it
              with files in a target folder based on a specific key
              (e.g., IP, domain, URL). It identifies non-matching data from
              the origin file and saves the results in your preferred output
              format (CSV, XLSX, TXT or JSON).
----------------------------------------------------------------------------
`

var (
	cfgPath    string
	originPath string
	targetPath string
	outputPath string
	keyName    string
	mode       string
	debug      bool
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:           "datacompare",
	Short:         "Compare an origin dataset against a folder of target files by key",
	Long:          "datacompare finds which records of an origin file (CSV, XLS/XLSX, TXT or line-delimited JSON) have no counterpart, under an ip/domain/url key, in any file of a target folder.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("mode") {
			cfg.Mode = mode
		}
		if debug {
			cfg.Debug = true
		}
		if noProgress {
			cfg.Progress = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		key, err := extract.ParseKey(keyName)
		if err != nil {
			return err
		}

		log := logging.New(cfg.Debug)
		defer log.Sync()

		return runner.New(log).Run(runner.Options{
			OriginPath: originPath,
			TargetPath: targetPath,
			OutputPath: outputPath,
			Key:        key,
			Mode:       cfg.Mode,
			Progress:   cfg.Progress,
		})
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&originPath, "path-origin", "", "path to the origin file (CSV, XLS/XLSX, TXT or JSON)")
	f.StringVar(&targetPath, "path-target", "", "path to the folder containing files to compare against")
	f.StringVar(&outputPath, "output", "", "path to save the non-matching data (CSV, XLS/XLSX, TXT or JSON)")
	f.StringVar(&keyName, "key", "", "key type to compare: ip, domain or url")
	f.StringVar(&mode, "mode", config.Default().Mode, "comparison strategy: values (value-set difference) or rows (whole-row match)")
	f.StringVar(&cfgPath, "config", config.DefaultFile, "path to an optional settings file")
	f.BoolVar(&debug, "debug", false, "enable [DEBUG] diagnostics")
	f.BoolVar(&noProgress, "no-progress", false, "disable the per-file progress bar")

	for _, name := range []string{"path-origin", "path-target", "output", "key"} {
		cobra.CheckErr(rootCmd.MarkFlagRequired(name))
	}
}

func main() {
	fmt.Print(banner)
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
