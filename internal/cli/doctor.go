package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nikivanstein/MeetingRecorder/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if deps.Config.AssemblyAIKey != "" {
				f.SetupCheck("AssemblyAI API key", true, "configured")
			} else {
				f.SetupCheck("AssemblyAI API key", false, "not set. Set ASSEMBLYAI_API_KEY or add to config")
				ok = false
			}

			switch {
			case deps.Config.OpenAIKey != "":
				f.SetupCheck("Summarizer", true, "OpenAI ("+deps.Config.OpenAIModel+")")
			case deps.Config.OllamaModel != "":
				f.SetupCheck("Summarizer", true, "Ollama ("+deps.Config.OllamaModel+")")
			default:
				f.SetupCheck("Summarizer", false, "not set. Set OPENAI_API_KEY or OLLAMA_MODEL")
				ok = false
			}

			f.SetupCheck("Output directory", true, deps.Config.OutputDir)

			if deps.Config.Email.IsConfigured() {
				f.SetupCheck("Email delivery", true, "to "+deps.Config.Email.To)
			} else {
				f.SetupCheck("Email delivery", false, "not configured (optional)")
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to process meetings!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
