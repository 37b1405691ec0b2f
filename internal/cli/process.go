package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikivanstein/MeetingRecorder/internal/domain/meeting"
	"github.com/nikivanstein/MeetingRecorder/internal/output"
)

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var speakerFlags []string
	var sendEmail bool

	cmd := &cobra.Command{
		Use:   "process <recording.wav> [more takes...]",
		Short: "Merge recorded takes, transcribe and summarize them",
		Long: "Merge one or more recorded WAV takes into a single recording, transcribe it with " +
			"speaker diarisation, summarize the transcript and save the combined meeting notes.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			overrides, err := parseSpeakerFlags(speakerFlags)
			if err != nil {
				return err
			}
			for _, path := range args {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("audio file not found: %s", path)
				}
			}

			session := meeting.NewSession(deps.App.Audio)
			session.Start()
			for _, take := range args[:len(args)-1] {
				session.Pause(take)
				session.Start()
			}

			formatter.Merging(len(args))
			recording, err := session.Stop(args[len(args)-1])
			if err != nil {
				return err
			}
			if recording == "" {
				formatter.Warning("No audio queued; nothing to process")
				return nil
			}
			formatter.Merged(recording)

			ctx := cmd.Context()

			formatter.Transcribing()
			result, err := deps.App.Transcribe.Execute(ctx, recording)
			if err != nil {
				return err
			}
			if result.Degraded() {
				formatter.Warning("Diarisation unavailable; transcript split on sentence boundaries")
			}
			resolver := meeting.NewLabelResolver(overrides)
			segments := resolver.Apply(result.Utterances)
			formatter.TranscribeDone(len(segments))

			formatter.Summarizing()
			summary, err := deps.App.Summarize.Execute(ctx, result.FullText())
			if err != nil {
				return err
			}
			formatter.SummarizeDone(len(summary.ActionItems))

			doc := meeting.BuildDocument(summary, segments)
			path, err := deps.App.Artifacts.SaveArtifact(doc)
			if err != nil {
				return err
			}
			formatter.ArtifactSaved(path)

			if sendEmail {
				if !deps.Config.Email.IsConfigured() {
					formatter.Warning("Email is not configured; skipping delivery")
					return nil
				}
				if err := deps.App.Mailer.Send("Meeting summary", emailBody(summary), path); err != nil {
					return err
				}
				formatter.EmailSent(deps.Config.Email.To)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&speakerFlags, "speaker", "s", nil,
		"Speaker label override as raw=Label (repeatable), e.g. -s A=Alice")
	cmd.Flags().BoolVar(&sendEmail, "email", false, "Email the meeting notes after saving")

	return cmd
}

func parseSpeakerFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(flags))
	for _, flag := range flags {
		raw, label, ok := strings.Cut(flag, "=")
		raw = strings.TrimSpace(raw)
		label = strings.TrimSpace(label)
		if !ok || raw == "" || label == "" {
			return nil, fmt.Errorf("invalid --speaker value %q: expected raw=Label", flag)
		}
		overrides[raw] = label
	}
	return overrides, nil
}

func emailBody(summary meeting.MeetingSummary) string {
	var sb strings.Builder
	sb.WriteString("Summary:\n")
	if summary.Summary != "" {
		sb.WriteString(summary.Summary)
	} else {
		sb.WriteString("Not available")
	}
	sb.WriteString("\n\nAction Items:\n")
	if len(summary.ActionItems) == 0 {
		sb.WriteString("Not available\n")
		return sb.String()
	}
	for _, item := range summary.ActionItems {
		if item.Owner != "" {
			fmt.Fprintf(&sb, "- %s (Owner: %s)\n", item.Description, item.Owner)
		} else {
			fmt.Fprintf(&sb, "- %s\n", item.Description)
		}
	}
	return sb.String()
}
