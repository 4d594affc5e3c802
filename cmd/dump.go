package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/traveler-cli/internal/config"
	"github.com/sells-group/traveler-cli/internal/fielddetect"
	"github.com/sells-group/traveler-cli/internal/geometry"
	"github.com/sells-group/traveler-cli/internal/record"
	"github.com/sells-group/traveler-cli/internal/wcfdate"
)

var (
	dumpOutDir string
	dumpSQL    bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.json>...",
	Short: "Normalize raw feed files and write records, field info and GeoJSON",
	Long: "For each <Name>_raw.json (or <Name>.json) writes <Name>.json, <Name>_fields.json " +
		"and <Name>.geojson to the output directory. With --sql also writes <Name>.sql.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if dumpOutDir != "" {
			cfg.Dump.OutDir = dumpOutDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		eng, err := cfg.Engine()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Dump.OutDir, 0o755); err != nil {
			return eris.Wrapf(err, "dump: create %s", cfg.Dump.OutDir)
		}

		opts := dumpOptions{
			OutDir:      cfg.Dump.OutDir,
			TableSchema: cfg.Dump.TableSchema,
			SQL:         dumpSQL,
		}
		return dumpFiles(ctx, eng, args, cfg.Dump.Concurrency, opts)
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutDir, "out", "o", "", "output directory (overrides dump.out_dir)")
	dumpCmd.Flags().BoolVar(&dumpSQL, "sql", false, "also write a PostGIS CREATE TABLE and INSERT script")
	rootCmd.AddCommand(dumpCmd)
}

type dumpOptions struct {
	OutDir      string
	TableSchema string
	SQL         bool
}

// dumpFiles processes paths concurrently. A failing file does not stop the
// others; the run fails if any file failed.
func dumpFiles(ctx context.Context, eng *config.Engine, paths []string, concurrency int, opts dumpOptions) error {
	zap.L().Info("dumping feeds",
		zap.Int("files", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := zap.L().With(zap.String("file", path))

			start := time.Now()
			n, err := dumpFile(eng, path, opts)
			if err != nil {
				failed.Add(1)
				log.Error("dump failed", zap.Error(err))
				return nil // don't abort the run on individual failure
			}

			succeeded.Add(1)
			log.Info("dump complete",
				zap.Int("records", n),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "dump")
	}

	zap.L().Info("dump finished",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	if failed.Load() > 0 {
		return eris.Errorf("dump: %d of %d files failed", failed.Load(), len(paths))
	}
	return nil
}

// dumpFile writes the outputs of one feed file and returns its record count.
func dumpFile(eng *config.Engine, path string, opts dumpOptions) (int, error) {
	records, err := loadRecords(eng, path)
	if err != nil {
		return 0, err
	}
	schema, err := eng.Infer.FromRecords(records)
	if err != nil {
		return 0, eris.Wrapf(err, "infer fields of %s", path)
	}

	name := feedName(path)
	base := filepath.Join(opts.OutDir, name)

	out := records
	if !eng.JSONSafe {
		out = make([]*record.Record, len(records))
		for i, r := range records {
			out[i] = wireDates(r)
		}
	}
	if err := writeJSON(base+".json", out); err != nil {
		return 0, err
	}
	if err := writeJSON(base+"_fields.json", schema); err != nil {
		return 0, err
	}
	if err := writeJSON(base+".geojson", eng.Geometry.FeatureCollection(records)); err != nil {
		return 0, err
	}
	if opts.SQL {
		if err := writeSQL(base+".sql", eng.Geometry, schema, records, opts.TableSchema, name, geomTypeFor(name, records)); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

// wireDates returns a copy of r with dates rendered back in WCF wire form.
func wireDates(r *record.Record) *record.Record {
	out := r.Clone()
	for k, v := range r.All() {
		if t, ok := v.(time.Time); ok {
			_ = out.Set(k, wcfdate.ToWCF(t))
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "encode %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

func writeSQL(path string, d *geometry.Deriver, schema *fielddetect.Schema, records []*record.Record, schemaName, table, geomType string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := encodeSQL(f, d, schema, records, schemaName, table, geomType); err != nil {
		_ = f.Close()
		return eris.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "close %s", path)
	}
	return nil
}

// encodeSQL writes the CREATE TABLE statement followed by one INSERT per
// record. The first write error aborts the dump.
func encodeSQL(dst io.Writer, d *geometry.Deriver, schema *fielddetect.Schema, records []*record.Record, schemaName, table, geomType string) error {
	w := bufio.NewWriter(dst)
	if _, err := fmt.Fprintf(w, "%s;\n\n", schema.CreateTableSQL(schemaName, table, geomType)); err != nil {
		return err
	}
	for i, r := range records {
		var geom []byte
		if geomType != "" {
			var err error
			geom, err = geometry.EWKB(d.Derive(r))
			if err != nil {
				return eris.Wrapf(err, "record %d", i)
			}
		}
		if _, err := fmt.Fprintf(w, "%s;\n", schema.InsertSQL(schemaName, table, r, geom)); err != nil {
			return err
		}
	}
	return w.Flush()
}
