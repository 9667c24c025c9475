package main

import (
	"fmt"

	"github.com/nguyentantai21042004/caption-rag/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootFlags struct {
	configPath string
	envPath    string
	dir        string
	output     string
	rules      string
	workers    int
	rpm        int
	logLevel   string
	docx       bool
	watch      bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "caption-rag",
		Short: "Turn raw transcripts into RAG-ready documents",
		Long: `caption-rag cleans every .txt and .srt transcript in a directory,
enriches it with Gemini into a retrieval-friendly document, applies the
terminology rules and writes <name>_rag.txt next to the original transcript.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(flags.envPath); err != nil {
				return err
			}
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := applyFlags(cfg, cmd.Flags(), flags); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, flags.watch, cmd.OutOrStdout())
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "config.yaml", "configuration file path")
	f.StringVar(&flags.envPath, "env", ".env", "dotenv file with the API keys")
	f.StringVarP(&flags.dir, "dir", "d", ".", "directory with the transcripts")
	f.StringVarP(&flags.output, "output", "o", "", "output directory (default: same as --dir)")
	f.StringVar(&flags.rules, "rules", "rules.txt", "terminology rules file")
	f.IntVarP(&flags.workers, "workers", "j", 3, "files processed in parallel")
	f.IntVar(&flags.rpm, "rpm", 0, "Gemini requests per minute across workers (0: unlimited)")
	f.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.BoolVar(&flags.docx, "docx", false, "also write a .docx next to every output")
	f.BoolVarP(&flags.watch, "watch", "w", false, "keep running and process new transcripts as they appear")

	return rootCmd
}

// applyFlags overrides the loaded configuration with the flags set on the
// command line. An output directory that followed the input keeps following it.
func applyFlags(cfg *config.Config, set *pflag.FlagSet, flags rootFlags) error {
	outputFollowsInput := cfg.Paths.Output == cfg.Paths.Input

	if set.Changed("dir") {
		cfg.Paths.Input = flags.dir
		if outputFollowsInput {
			cfg.Paths.Output = flags.dir
		}
	}
	if set.Changed("output") {
		cfg.Paths.Output = flags.output
	}
	if set.Changed("rules") {
		cfg.Paths.Rules = flags.rules
	}
	if set.Changed("workers") {
		cfg.Performance.MaxConcurrent = flags.workers
	}
	if set.Changed("rpm") {
		cfg.Performance.RequestsPerMinute = flags.rpm
	}
	if set.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if set.Changed("docx") {
		cfg.Output.Docx = flags.docx
	}

	if cfg.Performance.MaxConcurrent == 0 {
		return fmt.Errorf("--workers must be at least 1")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
