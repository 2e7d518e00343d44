package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// capabilityView is the rendered form of one catalog entry.
type capabilityView struct {
	Operation   string   `json:"operation" yaml:"operation"`
	Strategy    string   `json:"strategy" yaml:"strategy"`
	ItemsField  string   `json:"items,omitempty" yaml:"items,omitempty"`
	PagingField string   `json:"paging,omitempty" yaml:"paging,omitempty"`
	OptionKeys  []string `json:"option_keys" yaml:"option_keys"`
}

func viewOf(op string, c methods.Capability) capabilityView {
	return capabilityView{
		Operation:   op,
		Strategy:    string(c.Strategy),
		ItemsField:  c.ItemsField,
		PagingField: c.PagingField,
		OptionKeys:  methods.OptionKeys(c.Strategy),
	}
}

func viewsOf(reg *methods.Registry) []capabilityView {
	return lo.Map(reg.Operations(), func(op string, _ int) capabilityView {
		return viewOf(op, reg.Classify(op))
	})
}

// loadRegistry returns the registry of the --catalog file, or the embedded
// catalog when none is configured.
func (c *cli) loadRegistry() (*methods.Registry, error) {
	path := c.v.GetString("catalog")
	if path == "" {
		return methods.DefaultCatalog()
	}
	return loadRegistryFile(path)
}

func loadRegistryFile(path string) (*methods.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	reg, err := methods.LoadRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

func (c *cli) newListCommand() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List paginated operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}

			views := viewsOf(reg)
			if strategy != "" {
				s, err := methods.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				views = lo.Filter(views, func(v capabilityView, _ int) bool {
					return v.Strategy == string(s)
				})
			}
			return c.render(cmd.OutOrStdout(), views)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "only list operations of this strategy (cursor, timeline, traditional)")
	return cmd
}

func (c *cli) newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show OPERATION",
		Short: "Show how an operation paginates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), []capabilityView{viewOf(args[0], reg.Classify(args[0]))})
		},
	}
}

func (c *cli) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate catalog files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed int
			for _, path := range args {
				reg, err := loadRegistryFile(path)
				if err != nil {
					failed++
					_, _ = fmt.Fprintf(out, "FAIL %v\n", err)
					continue
				}
				_, _ = fmt.Fprintf(out, "ok   %s (%d operations)\n", path, reg.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
			}
			return nil
		},
	}
}

func (c *cli) newConvertCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a legacy per-strategy catalog into the declaration format",
		Long: `convert reads a legacy catalog with separate cursor, timeline and
traditional sections and writes the equivalent declaration catalog.
Operations listed in several sections keep the first of cursor, timeline,
traditional; with --strict they are an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open legacy catalog: %w", err)
			}
			defer f.Close()

			var sets methods.LegacySets
			dec := yaml.NewDecoder(f)
			dec.KnownFields(true)
			if err := dec.Decode(&sets); err != nil && err != io.EOF {
				return fmt.Errorf("decode legacy catalog: %w", err)
			}

			decls, err := methods.MergeRegistries(sets, strict)
			if err != nil {
				return err
			}
			if _, err := methods.NewRegistry(decls); err != nil {
				return err
			}
			return methods.WriteCatalog(cmd.OutOrStdout(), decls)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on operations listed under several strategies")
	return cmd
}

func (c *cli) render(w io.Writer, views []capabilityView) error {
	switch c.v.GetString("output") {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(views); err != nil {
			return fmt.Errorf("failed to encode capabilities as JSON: %w", err)
		}
		return nil
	case outputYAML:
		encoder := yaml.NewEncoder(w)
		if err := encoder.Encode(views); err != nil {
			return fmt.Errorf("failed to encode capabilities as YAML: %w", err)
		}
		return encoder.Close()
	default:
		return renderTable(w, views)
	}
}

func renderTable(w io.Writer, views []capabilityView) error {
	if len(views) == 0 {
		_, _ = io.WriteString(w, "No operations found\n")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Operation", "Strategy", "Items", "Paging", "Options")
	for _, v := range views {
		_ = table.Append([]string{
			v.Operation,
			v.Strategy,
			v.ItemsField,
			v.PagingField,
			strings.Join(v.OptionKeys, ", "),
		})
	}
	return table.Render()
}
