package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/traveler-cli/internal/fielddetect"
)

var fieldsFormat string

var fieldsCmd = &cobra.Command{
	Use:   "fields <file.json>",
	Short: "Print the field info inferred from a raw feed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := cfg.Engine()
		if err != nil {
			return err
		}
		records, err := loadRecords(eng, args[0])
		if err != nil {
			return err
		}
		schema, err := eng.Infer.FromRecords(records)
		if err != nil {
			return eris.Wrap(err, "fields")
		}

		name := feedName(args[0])
		return formatFields(os.Stdout, schema, fieldsFormat, cfg.Dump.TableSchema, name, geomTypeFor(name, records))
	},
}

func init() {
	fieldsCmd.Flags().StringVar(&fieldsFormat, "format", "json", "output format: json, yaml or sql")
	rootCmd.AddCommand(fieldsCmd)
}

func formatFields(w io.Writer, schema *fielddetect.Schema, format, schemaName, table, geomType string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return eris.Wrap(err, "fields: encode json")
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schema.Fields()); err != nil {
			return eris.Wrap(err, "fields: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "fields: encode yaml")
		}
	case "sql":
		fmt.Fprintf(w, "%s;\n", schema.CreateTableSQL(schemaName, table, geomType))
	default:
		return eris.Errorf("fields: unknown format %q", format)
	}
	return nil
}
