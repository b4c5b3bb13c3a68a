package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/restapi/pkg/cli/internal/output"
	"github.com/getmockd/restapi/pkg/query"
	"github.com/getmockd/restapi/pkg/resource"
)

var (
	listWhere string
	listOrder string
)

var findCmd = &cobra.Command{
	Use:   "find <model> <id>",
	Short: "Fetch one record",
	Long: `Fetch one record with GET /<resource>/<id>.

Examples:
  restapi find Dog 1
  restapi find User 42 --url http://localhost:8080`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

var listCmd = &cobra.Command{
	Use:   "list <model>",
	Short: "List records of a model",
	Long: `List records with GET /<resource>, optionally filtered and ordered.

--where takes a JSON object of field/value pairs that must all match.
--order takes a field name followed by an optional ASC or DESC.

Examples:
  restapi list Dog
  restapi list Dog --where '{"name":"Rex"}'
  restapi list Post --order "title DESC"`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var createCmd = &cobra.Command{
	Use:   "create <model> <json>",
	Short: "Create a record",
	Long: `Create a record with POST /<resource> and print the assigned id.

Examples:
  restapi create Dog '{"name":"Rex"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <model> <id> <json>",
	Short: "Update attributes of a record",
	Long: `Update a record with PUT /<resource>/<id>. Fields not given are kept.

Examples:
  restapi update Dog 1 '{"name":"Max"}'`,
	Args: cobra.ExactArgs(3),
	RunE: runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <model> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

var existsCmd = &cobra.Command{
	Use:   "exists <model> <id>",
	Short: "Check whether a record exists",
	Long: `Check a record with HEAD /<resource>/<id>. Prints true or false.

Examples:
  restapi exists Dog 1`,
	Args: cobra.ExactArgs(2),
	RunE: runExists,
}

func init() {
	for _, cmd := range []*cobra.Command{findCmd, listCmd, createCmd, updateCmd, deleteCmd, existsCmd} {
		cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (YAML or JSON) providing adapter settings and models")
		rootCmd.AddCommand(cmd)
	}
	listCmd.Flags().StringVar(&listWhere, "where", "", "JSON object of field values to match")
	listCmd.Flags().StringVar(&listOrder, "order", "", `Sort order, e.g. "name" or "name DESC"`)
}

func runFind(cmd *cobra.Command, args []string) error {
	s, err := connect()
	if err != nil {
		return err
	}
	rec, err := s.Adapter.Find(cmd.Context(), args[0], parseID(args[1]))
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%s %s: %w", resource.Name(args[0]), args[1], ErrRecordNotFound)
	}
	return output.JSON(cmd.OutOrStdout(), rec)
}

func runList(cmd *cobra.Command, args []string) error {
	q := &query.Query{Order: listOrder}
	if listWhere != "" {
		if err := json.Unmarshal([]byte(listWhere), &q.Where); err != nil {
			return fmt.Errorf("invalid --where: %w", err)
		}
	}

	s, err := connect()
	if err != nil {
		return err
	}

	var filter any
	if !q.IsZero() {
		filter = q
	}
	records, err := s.Adapter.All(cmd.Context(), args[0], filter)
	if err != nil {
		return err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return output.JSON(cmd.OutOrStdout(), records)
}

func runCreate(cmd *cobra.Command, args []string) error {
	rec, err := parseRecord(args[1])
	if err != nil {
		return err
	}
	s, err := connect()
	if err != nil {
		return err
	}
	id, err := s.Adapter.Create(cmd.Context(), args[0], rec)
	if err != nil {
		return err
	}

	// Servers that do not echo an id return the created record instead.
	if full, ok := id.(map[string]any); ok {
		return output.JSON(cmd.OutOrStdout(), full)
	}
	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"id": id})
	}
	if id == nil {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", resource.Name(args[0]))
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s %v\n", resource.Name(args[0]), id)
	return err
}

func runUpdate(cmd *cobra.Command, args []string) error {
	rec, err := parseRecord(args[2])
	if err != nil {
		return err
	}
	s, err := connect()
	if err != nil {
		return err
	}
	updated, err := s.Adapter.UpdateAttributes(cmd.Context(), args[0], parseID(args[1]), rec)
	if err != nil {
		return err
	}
	return output.JSON(cmd.OutOrStdout(), updated)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := connect()
	if err != nil {
		return err
	}
	id := parseID(args[1])
	if err := s.Adapter.Destroy(cmd.Context(), args[0], id); err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"deleted": true, "id": id})
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %v\n", resource.Name(args[0]), id)
	return err
}

func runExists(cmd *cobra.Command, args []string) error {
	s, err := connect()
	if err != nil {
		return err
	}
	id := parseID(args[1])
	ok, err := s.Adapter.Exists(cmd.Context(), args[0], id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"exists": ok, "id": id})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
	return err
}
