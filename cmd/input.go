package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/traveler-cli/internal/config"
	"github.com/sells-group/traveler-cli/internal/record"
	"github.com/sells-group/traveler-cli/internal/traveler"
)

// readDocument reads a feed file as UTF-8 text. A UTF-8 or UTF-16 byte order
// mark selects the decoding and is stripped.
func readDocument(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eris.Wrapf(err, "open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(r)
	if err != nil {
		return "", eris.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// feedName derives the output base name from a raw feed file:
// "data/TrafficFlow_raw.json" becomes "TrafficFlow".
func feedName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(name, "_raw")
}

// geomTypeFor picks the geometry column type of a feed: the catalog entry for
// its name, else the type implied by the first record's kind.
func geomTypeFor(name string, records []*record.Record) string {
	if feed, ok := traveler.FeedByName(name); ok {
		return feed.GeomType
	}
	if len(records) == 0 {
		return ""
	}
	for _, feed := range traveler.Feeds {
		if feed.Kind != "" && feed.Kind == records[0].Kind {
			return feed.GeomType
		}
	}
	return ""
}

// loadRecords reads and normalizes one feed file.
func loadRecords(eng *config.Engine, path string) ([]*record.Record, error) {
	text, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	records, err := eng.Parser.Parse(text)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return records, nil
}
