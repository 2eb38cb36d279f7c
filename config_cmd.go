package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/islandboy/idlist/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigSetCmd("set-class <guid> <name>", "Set the display name of a class", config.TableClassNames))
	cmd.AddCommand(newConfigSetCmd("set-type <ext> <description>", "Set the description of a file extension", config.TableFileTypes))
	cmd.AddCommand(newConfigUnsetCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration after all overrides",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	if cc.Flags.JSON {
		return printJSON(cmd.OutOrStdout(), cc.Cfg)
	}

	return config.RenderEffective(cc.Cfg, cmd.OutOrStdout())
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "init",
		Short:       "Write a commented config file template",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := mustCLIContext(cmd.Context())
			path := configPathFor(cc.Flags)

			if err := config.CreateConfig(path, cc.Logger); err != nil {
				return err
			}

			cc.Statusf("Created %s\n", path)

			return nil
		},
	}
}

// newConfigSetCmd builds a command that sets one entry of table. The
// result is validated by loading the edited file.
func newConfigSetCmd(use, short, table string) *cobra.Command {
	return &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := mustCLIContext(cmd.Context())
			path := configPathFor(cc.Flags)

			if err := config.SetTableEntry(path, table, args[0], args[1], cc.Logger); err != nil {
				return err
			}

			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("config no longer valid after edit (fix %s by hand): %w", path, err)
			}

			cc.Statusf("Set [%s] %q = %q\n", table, args[0], args[1])

			return nil
		},
	}
}

// unsetTables maps the unset command's table argument to a config table.
var unsetTables = map[string]string{
	"class": config.TableClassNames,
	"type":  config.TableFileTypes,
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "unset <class|type> <key>",
		Short:       "Remove a class name or file type entry",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := mustCLIContext(cmd.Context())

			table, ok := unsetTables[args[0]]
			if !ok {
				return fmt.Errorf("unknown table %q: use class or type", args[0])
			}

			path := configPathFor(cc.Flags)

			removed, err := config.DeleteTableEntry(path, table, args[1], cc.Logger)
			if err != nil {
				return err
			}

			if !removed {
				return fmt.Errorf("%q not found in [%s]", args[1], table)
			}

			cc.Statusf("Removed %q from [%s]\n", args[1], table)

			return nil
		},
	}
}
