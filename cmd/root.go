package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gitblit-mcp",
	Short: "MCP server exposing Gitblit repository browsing and search",
	Long: `gitblit-mcp bridges a Gitblit instance to AI agents via the Model
Context Protocol (MCP). It exposes repository listing, file browsing,
file reading and Lucene-backed file and commit search as MCP tools,
backed by the Gitblit Search API Plugin.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".gitblit-mcp.yml", "config file path")
}
