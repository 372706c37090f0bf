package cli

import (
	"fmt"

	"github.com/ariel-frischer/emojilog/internal/version"
	"github.com/spf13/cobra"
)

// SourceURL is the project home.
const SourceURL = "https://github.com/ariel-frischer/emojilog"

var versionShortFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the emojilog version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShortFlag {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), SourceURL)
	},
}

func init() {
	versionCmd.GroupID = GroupInternal
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionShortFlag, "short", "s", false, "Print only the version number")
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}
