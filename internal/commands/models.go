// internal/commands/models.go
package simplebench

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/simplebench/internal/ollama"
)

// modelsCmd lists the models available on the configured host, labeling
// currently loaded entries.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the configured Ollama host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := ollama.New(cfg)

		hostStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
		modelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
		loadedModelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not list models on %s: %w", cfg.HostURL, err)
		}

		loaded, err := client.LoadedModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not get running models on %s: %w", cfg.HostURL, err)
		}
		loadedSet := make(map[string]bool, len(loaded))
		for _, name := range loaded {
			loadedSet[name] = true
		}

		fmt.Println(hostStyle.Render(cfg.HostURL))
		for _, name := range models {
			if loadedSet[name] {
				fmt.Println("  " + loadedModelStyle.Render(name+" (loaded)"))
				continue
			}
			fmt.Println("  " + modelStyle.Render(name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
