// internal/commands/show.go
package simplebench

import (
	"github.com/spf13/cobra"
)

// showCmd groups informational subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show application state",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
