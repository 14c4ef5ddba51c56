package cli

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubedigest/internal/config"
	"github.com/nguyentantai21042004/tubedigest/internal/version"
)

type rootFlags struct {
	configPath string
	output     string
	logLevel   string
	noResume   bool
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "tubedigest <youtube-url>",
		Short: "Transcribe and summarize a YouTube video",
		Long: `Downloads the audio of a YouTube video, splits it into chunks small enough
for the speech API, transcribes every chunk, summarizes each transcript and
writes one final analysis plus a cost report under <output>/<video-id>/.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, args[0], flags)
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory (default: paths.output from config)")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&flags.noResume, "no-resume", false, "Redo every stage instead of reusing existing files")

	rootCmd.AddCommand(NewDoctorCmd(flags))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.output != "" {
		cfg.Paths.Output = flags.output
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.noResume {
		resume := false
		cfg.Pipeline.Resume = &resume
	}
	return cfg, nil
}
