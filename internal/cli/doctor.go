package cli

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubedigest/internal/config"
	"github.com/nguyentantai21042004/tubedigest/internal/output"
)

var errPrerequisites = errors.New("some prerequisites are missing")

func NewDoctorCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())

			cfg, err := loadConfig(flags)
			if err != nil {
				f.SetupCheck("Config", false, err.Error())
				return errPrerequisites
			}
			f.SetupCheck("Config", true, flags.configPath)

			ok := true
			tools := []struct{ name, binary, hint string }{
				{"yt-dlp", cfg.Tools.YtDlp, "not found. Install with: pip install yt-dlp"},
				{"ffmpeg", cfg.Tools.FFmpeg, "not found. Install with: brew install ffmpeg"},
				{"ffprobe", cfg.Tools.FFprobe, "not found. It ships with ffmpeg"},
			}
			for _, tool := range tools {
				if path, err := exec.LookPath(tool.binary); err != nil {
					f.SetupCheck(tool.name, false, tool.hint)
					ok = false
				} else {
					f.SetupCheck(tool.name, true, path)
				}
			}

			if cfg.GroqAPIKey != "" {
				f.SetupCheck("Groq API key", true, "configured")
			} else {
				f.SetupCheck("Groq API key", false, "not set. Set "+config.EnvGroqAPIKey+" or add it to .env")
				ok = false
			}

			if cfg.Analysis.Provider == config.ProviderGemini {
				if len(cfg.GeminiAPIKeys) > 0 {
					f.SetupCheck("Gemini API keys", true, "configured")
				} else {
					f.SetupCheck("Gemini API keys", false, "not set. Set "+config.EnvGeminiAPIKeys+" (comma separated)")
					ok = false
				}
			}

			if info, err := os.Stat(cfg.Paths.Output); err == nil && !info.IsDir() {
				f.SetupCheck("Output directory", false, cfg.Paths.Output+" is not a directory")
				ok = false
			} else {
				f.SetupCheck("Output directory", true, cfg.Paths.Output)
			}

			if !ok {
				f.Warning("Some prerequisites are missing.")
				return errPrerequisites
			}
			f.Success("All prerequisites met.")
			return nil
		},
	}
}
