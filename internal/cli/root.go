package cli

import (
	"github.com/spf13/cobra"

	"github.com/nikivanstein/MeetingRecorder/config"
	"github.com/nikivanstein/MeetingRecorder/internal/app"
	"github.com/nikivanstein/MeetingRecorder/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meeting",
		Short: "Turn recorded meetings into transcripts, summaries and action items",
		Long: "A CLI tool that merges recorded meeting audio, generates a diarised transcript " +
			"via AssemblyAI, and extracts a summary with action items using an LLM.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
