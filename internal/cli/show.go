package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dshills/confmaker/config"
	"github.com/dshills/confmaker/internal/output"
	"github.com/dshills/confmaker/internal/redact"
	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagReveal bool
	flagOut    string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			reportError(cmd, err)
			return nil
		}
		report, err := buildReport(store, flagReveal)
		if err != nil {
			reportError(cmd, err)
			return nil
		}
		if err := output.WriteReport(cmd.OutOrStdout(), report, flagFormat, flagOut); err != nil {
			reportError(cmd, err)
		}
		return nil
	},
}

// buildReport resolves the store and masks secret-looking values unless
// reveal is set.
func buildReport(store *config.Store, reveal bool) (*output.Report, error) {
	r, err := store.Load()
	if err != nil {
		return nil, err
	}
	report := &output.Report{Path: store.Path()}
	for _, name := range r.Names() {
		def, _ := store.Schema().Find(name)
		v, _ := r.Get(name)
		entry := output.Entry{
			Key:   name,
			Group: def.Group,
			Type:  def.Type.String(),
			Value: v.Raw(),
		}
		if entry.Value != nil && !reveal {
			masked := redact.Value(name, *entry.Value, redact.DefaultKeyPatterns)
			if masked != *entry.Value {
				entry.Value = &masked
				entry.Masked = true
			}
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Print every key, failing on the first one that is not configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			reportError(cmd, err)
			return nil
		}
		out := cmd.OutOrStdout()
		seen := make(map[string]bool)
		for _, def := range store.Schema() {
			if seen[def.Name] {
				continue
			}
			seen[def.Name] = true
			v, err := store.Get(def.Name)
			if err != nil {
				reportError(cmd, err)
				return nil
			}
			verb := "saved as"
			if v.Kind() == config.KindPath {
				verb = "located at"
			}
			fmt.Fprintf(out, "%s %s %s\n", def.Name, verb, v)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the resolved value of one key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			reportError(cmd, err)
			return nil
		}
		v, err := store.Get(args[0])
		if err != nil {
			reportError(cmd, err)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys declared in the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			reportError(cmd, err)
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tGROUP\tTYPE\tDESCRIPTION")
		for _, def := range store.Schema() {
			group := def.Group
			if group == "" {
				group = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Name, group, def.Type, def.Description)
		}
		if err := tw.Flush(); err != nil {
			reportError(cmd, err)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json, yaml")
	showCmd.Flags().BoolVar(&flagReveal, "reveal", false, "Print secret-looking values unmasked")
	showCmd.Flags().StringVar(&flagOut, "out", "", "Write output to a file instead of stdout")
}
