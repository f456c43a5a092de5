package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tgienger/taskboard/internal/templates"
)

func newTemplatesCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in task templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, t := range templates.Builtin {
				titles := make([]string, len(t.Items))
				for i, item := range t.Items {
					titles[i] = item.Title
				}
				fmt.Fprintf(out, "%s: %s\n", t.Name, strings.Join(titles, ", "))
			}
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply NAME",
		Short: "Add the tasks of a template to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.open()
			if err != nil {
				return err
			}
			defer rt.Close()

			cmds, err := templates.Commands(args[0], rt.store.NextID, time.Now())
			if err != nil {
				return err
			}
			for _, c := range cmds {
				rt.store.Dispatch(c)
			}
			if err := rt.SaveErr(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d tasks from %q\n", len(cmds), args[0])
			return nil
		},
	})
	return cmd
}
