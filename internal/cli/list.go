package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikivanstein/MeetingRecorder/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved meeting notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			entries, err := os.ReadDir(deps.Config.OutputDir)
			if err != nil {
				if os.IsNotExist(err) {
					formatter.Info("No meetings found")
					return nil
				}
				return err
			}

			var notes []string
			for _, e := range entries {
				if !e.IsDir() && strings.HasPrefix(e.Name(), "meeting_") && strings.HasSuffix(e.Name(), ".md") {
					notes = append(notes, e.Name())
				}
			}

			if len(notes) == 0 {
				formatter.Info("No meetings found")
				return nil
			}

			// Names are timestamp-based, so this is newest first.
			sort.Sort(sort.Reverse(sort.StringSlice(notes)))

			formatter.ArtifactListHeader()
			for _, name := range notes {
				formatter.ArtifactListItem(name)
			}
			return nil
		},
	}

	return cmd
}
