package commands

import (
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the QIWI CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := struct {
				Version string `json:"version" yaml:"version"`
				Commit  string `json:"commit"  yaml:"commit"`
				Built   string `json:"built"   yaml:"built"`
			}{
				Version: version,
				Commit:  commit,
				Built:   date,
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, versionInfo)
			if done {
				return err
			}

			return renderKeyValueTable(out, [][2]string{
				{"Version", version},
				{"Commit", commit},
				{"Built", date},
			})
		},
	}
}
