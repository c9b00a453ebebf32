package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pvginkel/gitblit-mcp/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long:  `Writes a .gitblit-mcp.yml file with default settings to fill in, most importantly gitblit_url.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", cfgFile)
		}

		cfg := config.DefaultConfig()
		cfg.GitblitURL = "http://gitblit.example.com:8080"
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}

		fmt.Printf("Wrote %s. Set gitblit_url to your Gitblit instance before running serve.\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
