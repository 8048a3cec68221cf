package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagReset bool

type unknownGroupError struct {
	group string
	known []string
}

func (e *unknownGroupError) Error() string {
	return fmt.Sprintf("unknown group %q (known groups: %s)", e.group, strings.Join(e.known, ", "))
}

var configureCmd = &cobra.Command{
	Use:   "configure [group]",
	Short: "Interactively set the keys of a group",
	Long: "Prompt for every key in the group (or every key when no group is given) " +
		"and save all resolved values to the configuration file. Leave an answer " +
		"blank to keep the current value.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			reportError(cmd, err)
			return nil
		}

		var group string
		if len(args) == 1 {
			group = args[0]
			if len(store.Schema().InGroup(group)) == 0 {
				reportError(cmd, &unknownGroupError{group: group, known: store.Schema().Groups()})
				return nil
			}
		}

		if err := store.Update(group, flagReset); err != nil {
			reportError(cmd, err)
		}
		return nil
	},
}

func init() {
	configureCmd.Flags().BoolVar(&flagReset, "reset", false, "Ignore existing values of the group's keys")
}
