package service

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-table-mirror/models"
)

func mixedSchema(t *testing.T) *models.TableSchema {
	t.Helper()
	s, err := models.NewTableSchema("mixed", []models.ColumnDescriptor{
		{Name: "id", UDTName: "int8", PrimaryKey: true},
		{Name: "qty", UDTName: "int4", Nullable: true},
		{Name: "price", UDTName: "float8", Nullable: true},
		{Name: "due", UDTName: "date", Nullable: true},
		{Name: "seen", UDTName: "timestamp", Nullable: true},
		{Name: "note", UDTName: "text", Nullable: true},
		{Name: "rank", UDTName: "int4", Nullable: true},
		{Name: "updated_at", UDTName: "timestamptz", Nullable: true},
	})
	require.NoError(t, err)
	return s
}

func TestConform(t *testing.T) {
	schema := mixedSchema(t)
	in := models.NewSnapshot(nil, []models.Row{
		{
			"id":         json.Number("9007199254740993"),
			"qty":        3.0,
			"price":      json.Number("1.5"),
			"due":        "2024-03-01",
			"seen":       "2024-03-01T12:30:00",
			"note":       nil,
			"rank":       nil,
			"updated_at": "2024-03-01T12:30:00+02:00",
			"extra":      json.Number("7"),
		},
		{
			"id":         json.Number("2"),
			"qty":        nil,
			"price":      math.NaN(),
			"due":        nil,
			"seen":       nil,
			"note":       nil,
			"rank":       nil,
			"updated_at": nil,
			"extra":      json.Number("7.5"),
		},
	})

	out := conform(schema, in)

	r := out.Rows[0]
	assert.Equal(t, int64(9007199254740993), r["id"])
	assert.Equal(t, int64(3), r["qty"])
	assert.Equal(t, 1.5, r["price"])
	assert.Equal(t, int64(7), r["extra"])
	require.IsType(t, time.Time{}, r["updated_at"])
	assert.True(t, r["updated_at"].(time.Time).Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
	require.IsType(t, time.Time{}, r["due"])

	assert.Nil(t, out.Rows[1]["price"], "NaN becomes null")
	assert.Equal(t, 7.5, out.Rows[1]["extra"])

	assert.Equal(t, models.Int64, out.Type("id"))
	assert.Equal(t, models.Float64, out.Type("price"))
	assert.Equal(t, models.DateTimeTZ, out.Type("updated_at"))
	assert.Equal(t, models.Int32, out.Type("rank"), "all-null columns take the preferred type")
	assert.Equal(t, models.Object, out.Type("note"))

	assert.IsType(t, json.Number(""), in.Rows[0]["id"], "input is not mutated")
}

func TestConform_UndeclaredColumns(t *testing.T) {
	schema := mixedSchema(t)
	in := models.NewSnapshot(nil, []models.Row{
		{"id": int64(1), "legacy": json.Number("12"), "ratio": json.Number("0.25"), "tag": "x", "big": json.Number("1e400")},
	})

	r := conform(schema, in).Rows[0]

	assert.Equal(t, int64(12), r["legacy"])
	assert.Equal(t, 0.25, r["ratio"])
	assert.Equal(t, "x", r["tag"])
	assert.Equal(t, json.Number("1e400"), r["big"], "numbers that do not fit are kept")
}

func TestConform_KeepsColumnsOfEmptySnapshot(t *testing.T) {
	schema := mixedSchema(t)
	out := conform(schema, &models.Snapshot{})
	assert.Equal(t, schema.ColumnNames(), out.Columns)
	assert.Equal(t, 0, out.Len())
}

func TestConformValue_Unconvertible(t *testing.T) {
	assert.Equal(t, "abc", conformValue(models.BigInt, "abc"))
	assert.Equal(t, "not a date", conformValue(models.TimestampTZ, "not a date"))
	assert.Equal(t, true, conformValue(models.Boolean, true))
	assert.Nil(t, conformValue(models.BigInt, math.NaN()))
}

func TestUploadValue(t *testing.T) {
	berlin := time.FixedZone("CET", 60*60)
	instant := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		typ  models.DeclaredType
		in   any
		loc  *time.Location
		want any
	}{
		{name: "nil", typ: models.Text, in: nil, want: nil},
		{name: "string", typ: models.Text, in: "x", want: "x"},
		{name: "date keeps wall date", typ: models.Date, in: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), loc: berlin, want: "2024-03-01"},
		{name: "naive timestamp", typ: models.Timestamp, in: instant, loc: berlin, want: "2024-03-01T23:30:00"},
		{name: "timestamptz in location", typ: models.TimestampTZ, in: instant, loc: berlin, want: "2024-03-02T00:30:00+01:00"},
		{name: "timestamptz default utc", typ: models.TimestampTZ, in: instant, want: "2024-03-01T23:30:00Z"},
		{name: "nan", typ: models.DoublePrecision, in: math.NaN(), want: nil},
		{name: "+inf", typ: models.DoublePrecision, in: math.Inf(1), want: "Infinity"},
		{name: "-inf", typ: models.DoublePrecision, in: math.Inf(-1), want: "-Infinity"},
		{name: "whole float into integer", typ: models.BigInt, in: 42.0, want: int64(42)},
		{name: "fraction into integer kept", typ: models.BigInt, in: 42.5, want: 42.5},
		{name: "float32", typ: models.Real, in: float32(0.5), want: 0.5},
		{name: "float into float", typ: models.DoublePrecision, in: 2.0, want: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uploadValue(tt.typ, tt.in, tt.loc))
		})
	}
}

func TestUpsertRows_FillsAbsentColumns(t *testing.T) {
	schema := mixedSchema(t)
	s := &models.Snapshot{
		Columns: []string{"id", "note"},
		Rows:    []models.Row{{"id": int64(1)}},
	}

	rows := upsertRows(schema, s, time.UTC)

	require.Len(t, rows, 1)
	assert.Equal(t, models.Row{"id": int64(1), "note": nil}, rows[0])
}

func TestDeleteKeys(t *testing.T) {
	s := models.NewSnapshot(nil, []models.Row{
		{"a": int64(1), "b": "x", "v": 1.0},
		{"a": int64(2), "b": "y", "v": 2.0},
	})

	keys, err := deleteKeys(s, []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, []models.Row{
		{"a": int64(1), "b": "x"},
		{"a": int64(2), "b": "y"},
	}, keys)
}

func TestDeleteKeys_NullComponent(t *testing.T) {
	for name, v := range map[string]any{"nil": nil, "nan": math.NaN()} {
		t.Run(name, func(t *testing.T) {
			s := models.NewSnapshot([]string{"a", "b"}, []models.Row{
				{"a": int64(1), "b": "x"},
				{"a": v, "b": "y"},
			})

			_, err := deleteKeys(s, []string{"a", "b"})
			assert.ErrorIs(t, err, models.ErrNullPrimaryKeyPart)
		})
	}
}
