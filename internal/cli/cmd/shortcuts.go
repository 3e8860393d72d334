package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/cli/model"
	"github.com/jobdeck/jobdeck/internal/cli/styles"
	"github.com/jobdeck/jobdeck/internal/shortcuts"
)

var (
	listJSON     bool
	listCategory string
	resetAll     bool
)

const importFilePerm = 0o600

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Inspect and manage keyboard shortcuts",
	Long: `Inspect the shortcut catalogue and manage your customizations.

Customizations are stored locally and apply on top of the built-in
defaults. Use export/import to move them between machines.`,
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)

	shortcutsCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().StringVar(&listCategory, "category", "", "only show one category")

	shortcutsCmd.AddCommand(browseCmd)
	shortcutsCmd.AddCommand(setCmd)
	shortcutsCmd.AddCommand(enableCmd)
	shortcutsCmd.AddCommand(disableCmd)

	shortcutsCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "reset every shortcut")

	shortcutsCmd.AddCommand(exportCmd)
	shortcutsCmd.AddCommand(importCmd)
	shortcutsCmd.AddCommand(schemaCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List shortcuts and their effective keys",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		reg := app.Registry

		defs := reg.All()
		if listCategory != "" {
			defs = reg.ByCategory(listCategory)
		}

		if listJSON {
			type row struct {
				ID          string   `json:"id"`
				Category    string   `json:"category"`
				Description string   `json:"description"`
				Keys        []string `json:"keys"`
				Enabled     bool     `json:"enabled"`
			}
			rows := make([]row, 0, len(defs))
			for _, d := range defs {
				rows = append(rows, row{
					ID:          d.ID,
					Category:    d.Category,
					Description: d.Description,
					Keys:        reg.EffectiveKeys(d.ID),
					Enabled:     reg.IsEnabled(d.ID),
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		theme := styles.DefaultTheme()
		platform := shortcuts.RuntimePlatform()
		fmt.Println(theme.Title.Render("Keyboard Shortcuts"))
		for _, d := range defs {
			keys := reg.EffectiveKeys(d.ID)
			display := make([]string, len(keys))
			for i, k := range keys {
				display[i] = shortcuts.DisplayKey(platform, k)
			}
			state := ""
			if !reg.IsEnabled(d.ID) {
				state = theme.WarningStyle.Render(" (disabled)")
			}
			fmt.Printf("  %s  %s%s\n",
				theme.HelpKey.Render(fmt.Sprintf("%-18s", strings.Join(display, " "))),
				d.Description,
				state,
			)
		}
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and edit shortcuts interactively",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		app.WatchConfig()
		m := model.NewShortcutsModel(app.Ctx(), app.Registry)
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

var setCmd = &cobra.Command{
	Use:   "set <id> <key>...",
	Short: "Rebind a shortcut to a new key sequence",
	Long: `Rebind a shortcut. Keys are case-insensitive tokens, one argument per
key in the sequence, e.g.:

  jobdeck shortcuts set nav-jobs g b
  jobdeck shortcuts set nav-search meta k`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		id, keys := args[0], args[1:]
		if err := app.Registry.Customize(app.Ctx(), id, keys); err != nil {
			return err
		}
		fmt.Printf("%s bound to %q\n", id, strings.Join(keys, " "))
		return nil
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setEnabled(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setEnabled(args[0], false)
	},
}

func setEnabled(id string, enabled bool) error {
	app := GetApp()
	if err := app.Registry.SetEnabled(app.Ctx(), id, enabled); err != nil {
		return err
	}
	if enabled {
		fmt.Printf("%s enabled\n", id)
	} else {
		fmt.Printf("%s disabled\n", id)
	}
	return nil
}

var resetCmd = &cobra.Command{
	Use:   "reset [id]",
	Short: "Reset shortcut customizations to defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		if resetAll {
			if err := app.Registry.ResetAll(app.Ctx()); err != nil {
				return err
			}
			fmt.Println("all shortcuts reset to defaults")
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("provide a shortcut id or --all")
		}
		if err := app.Registry.ResetToDefault(app.Ctx(), args[0]); err != nil {
			return err
		}
		fmt.Printf("%s reset to default\n", args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export customizations as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		blob, err := app.Registry.Export()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Println(string(blob))
			return nil
		}
		if err := os.WriteFile(args[0], blob, importFilePerm); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Printf("customizations exported to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import customizations from a JSON export",
	Long: `Import customizations from a JSON export, replacing the current set.

The import is all-or-nothing: an unknown shortcut id or a key conflict
anywhere in the file rejects the whole import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		if err := app.Registry.Import(app.Ctx(), blob); err != nil {
			return err
		}
		fmt.Println("customizations imported")
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of an export entry",
	Long: `Print the JSON Schema describing one entry of the export format. The
export file itself is a flat object mapping shortcut ids to such entries.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		r := new(jsonschema.Reflector)
		schema := r.Reflect(&shortcuts.Customization{})
		schema.ID = "https://github.com/jobdeck/jobdeck/shortcuts.schema.json"
		schema.Title = "Jobdeck Shortcut Customization"
		schema.Description = "A single per-shortcut override: replacement keys and enabled flag"

		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}
