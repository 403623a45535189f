// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dirauthd",
	Short: "dirauthd authenticates users against an LDAP directory",
	Long: `dirauthd is an authentication service backed by an LDAP directory.
It verifies credentials against the directory, maps directory entries and
group memberships to application roles, and can fall back to cached
credentials when the directory is unreachable.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
