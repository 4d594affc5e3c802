package fielddetect

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sells-group/traveler-cli/internal/record"
)

// SQLType returns the PostgreSQL column type for a field.
func SQLType(fi *FieldInfo) string {
	switch fi.Type {
	case TypeGUID:
		return "uuid"
	case TypeDate:
		return "timestamptz"
	case TypeRaster, TypeBlob:
		return "bytea"
	case TypeDouble:
		return "double precision"
	case TypeFloat:
		return "real"
	case TypeLong:
		return "bigint"
	case TypeShort:
		return "smallint"
	case TypeText:
		if fi.TextLength != nil && *fi.TextLength > 0 {
			return fmt.Sprintf("varchar(%d)", *fi.TextLength)
		}
		return "text"
	default:
		return "text"
	}
}

// CreateTableSQL renders a CREATE TABLE statement for the schema. When
// geomType is non-empty (e.g. "POINT", "MULTIPOINT") a geom column with
// SRID 4326 is appended.
func (s *Schema) CreateTableSQL(schemaName, table, geomType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", pgx.Identifier{schemaName, table}.Sanitize())

	cols := make([]string, 0, len(s.names)+1)
	for _, fi := range s.Fields() {
		col := fmt.Sprintf("\t%s %s", pgx.Identifier{fi.Name}.Sanitize(), SQLType(fi))
		if !fi.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	if geomType != "" {
		cols = append(cols, fmt.Sprintf("\tgeom geometry(%s, 4326)", strings.ToUpper(geomType)))
	}

	b.WriteString(strings.Join(cols, ",\n"))
	b.WriteString("\n)")
	return b.String()
}

// InsertSQL renders an INSERT of r into the table, with one column per schema
// field. Fields missing from r are written as NULL. A non-nil geom is EWKB and
// fills the geom column.
func (s *Schema) InsertSQL(schemaName, table string, r *record.Record, geom []byte) string {
	cols := make([]string, 0, len(s.names)+1)
	vals := make([]string, 0, len(s.names)+1)
	for _, name := range s.names {
		v, _ := r.Get(name)
		cols = append(cols, pgx.Identifier{name}.Sanitize())
		vals = append(vals, sqlLiteral(v))
	}
	if geom != nil {
		cols = append(cols, "geom")
		vals = append(vals, "'"+hex.EncodeToString(geom)+"'::geometry")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{schemaName, table}.Sanitize(),
		strings.Join(cols, ", "),
		strings.Join(vals, ", "),
	)
}

func sqlLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return quote(val.Format(time.RFC3339Nano))
	case uuid.UUID:
		return quote(val.String())
	case []byte:
		return `'\x` + hex.EncodeToString(val) + "'"
	case string:
		return quote(val)
	default:
		return quote(fmt.Sprint(val))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
