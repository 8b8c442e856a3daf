package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infolist",
		Short: "Read infolists served from a database",
		Long: `infolist opens a list the same way a chat client script would and
prints every item of it.

Lists are bound to SQL queries in a YAML configuration file:

  database:
    driver: postgres # or mysql
    dsn: postgres://localhost:5432/chat
  lists:
    buffer:
      query: SELECT number, name, pointer FROM buffers
    nicklist:
      query: SELECT name, prefix FROM nicks WHERE buffer = $1
      bind: pointer

Examples:
  infolist dump buffer --config infolist.yml
  infolist dump nicklist --pointer 0x1f --format yaml`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewDumpCommand())

	return cmd
}

// Execute runs the root command and exits on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
