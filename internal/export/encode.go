package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/vnd.apache.parquet"
	}
}

const parquetParallelism = 4

// Encode serialises rows, which must be structs with json tags.
func Encode[T any](rows []T, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return EncodeCSV(rows)
	case FormatJSON:
		return EncodeJSON(rows)
	case FormatParquet:
		return EncodeParquet(rows)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", f)
	}
}

// EncodeJSON writes a two-space indented array.
func EncodeJSON[T any](rows []T) ([]byte, error) {
	if rows == nil {
		rows = []T{}
	}
	return json.MarshalIndent(rows, "", "  ")
}

// EncodeCSV writes a bare header row of json field names, then one row per
// record with every value double-quoted. Records are joined by "\n" with no
// trailing newline. Nil values render as empty fields.
func EncodeCSV[T any](rows []T) ([]byte, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	t := reflect.TypeOf(rows[0])
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("csv rows must be structs, got %s", t.Kind())
	}
	fields, headers := csvFields(t)

	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))
	cells := make([]string, len(fields))
	for _, row := range rows {
		v := reflect.ValueOf(row)
		for v.Kind() == reflect.Ptr && !v.IsNil() {
			v = v.Elem()
		}
		for i, idx := range fields {
			cell := ""
			if v.Kind() == reflect.Struct {
				cell = formatValue(v.Field(idx))
			}
			cells[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Join(cells, ","))
	}
	return buf.Bytes(), nil
}

// csvFields returns exported field indexes in declaration order with their
// json names.
func csvFields(t reflect.Type) ([]int, []string) {
	var idx []int
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		idx = append(idx, i)
		names = append(names, name)
	}
	return idx, names
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return ""
		}
		return formatValue(v.Elem())
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		if v.IsNil() {
			return ""
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, listSeparator)
	default:
		return fmt.Sprint(v.Interface())
	}
}

// EncodeParquet writes rows using their parquet struct tags, snappy compressed.
func EncodeParquet[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	fw := writerfile.NewWriterFile(&buf)

	pw, err := writer.NewParquetWriter(fw, new(T), parquetParallelism)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return buf.Bytes(), nil
}
