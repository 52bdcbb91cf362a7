package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-table-mirror/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *models.TableSchema {
	t.Helper()
	s, err := models.NewTableSchema("orders", []models.ColumnDescriptor{
		{Name: "id", UDTName: "int8", PrimaryKey: true},
		{Name: "sku", UDTName: "varchar", Unique: true, Nullable: true},
		{Name: "qty", UDTName: "int2", Nullable: true},
		{Name: "meta", UDTName: "jsonb", Nullable: true},
		{Name: "updated_at", UDTName: "timestamptz", Nullable: true},
	})
	require.NoError(t, err)
	return s
}

func TestValidateColumn_Clean(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	col := models.ColumnDescriptor{Name: "id", Type: models.BigInt, PrimaryKey: true}

	assert.Empty(t, v.ValidateColumn(col, []any{int64(1), int64(2)}, models.Int64))
}

func TestValidateColumn_NullabilityHasNoAllNullException(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	col := models.ColumnDescriptor{Name: "qty", Type: models.SmallInt, Nullable: false}

	issues := v.ValidateColumn(col, []any{nil, nil}, models.Object)

	require.Len(t, issues, 1)
	assert.Equal(t, models.IssueNullability, issues[0].Kind)
	assert.Equal(t, "qty", issues[0].Column)
}

func TestValidateColumn_Uniqueness(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	col := models.ColumnDescriptor{Name: "sku", Type: models.Text, Unique: true, Nullable: true}

	// nulls never collide
	assert.Empty(t, v.ValidateColumn(col, []any{"a", nil, nil, "b"}, models.String))

	issues := v.ValidateColumn(col, []any{"a", "b", "a"}, models.String)
	require.Len(t, issues, 1)
	assert.Equal(t, models.IssueUniqueness, issues[0].Kind)
	assert.Contains(t, issues[0].Message, `"a"`)
}

func TestValidateColumn_PrimaryKeyDuplicatesAcrossRepresentations(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	col := models.ColumnDescriptor{Name: "id", Type: models.BigInt, PrimaryKey: true}

	issues := v.ValidateColumn(col, []any{int64(1), 1.0}, models.Float64)
	require.Len(t, issues, 1)
	assert.Equal(t, models.IssueUniqueness, issues[0].Kind)
}

func TestValidateColumn_AggregatesFindings(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	col := models.ColumnDescriptor{Name: "meta", Type: models.JSON, Nullable: false}

	issues := v.ValidateColumn(col, []any{"{bad json", nil, true}, models.Object)

	kinds := make([]models.IssueKind, 0, len(issues))
	for _, i := range issues {
		kinds = append(kinds, i.Kind)
	}
	assert.Equal(t, []models.IssueKind{models.IssueNullability, models.IssueJSON}, kinds)
}

func TestValidateColumn_TypeAndPoint(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	col := models.ColumnDescriptor{Name: "loc", Type: models.Point, Nullable: true}

	issues := v.ValidateColumn(col, []any{1.5}, models.Float64)

	require.Len(t, issues, 2)
	assert.Equal(t, models.IssueType, issues[0].Kind)
	assert.Equal(t, models.IssuePoint, issues[1].Kind)
}

func TestValidateSnapshot_MissingAndUnknownColumns(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	snap := models.NewSnapshot([]string{"id", "qty", "meta", "updated_at", "extra"}, []models.Row{
		{"id": int64(1), "qty": int64(2), "meta": `{}`, "updated_at": "2024-01-01", "extra": "x"},
	})

	issues := v.ValidateSnapshot(testSchema(t), snap)

	require.Len(t, issues, 2)
	assert.Equal(t, models.Issue{Kind: models.IssueMissing, Column: "sku", Message: "column not found in data"}, issues[0])
	assert.Equal(t, models.IssueUnknown, issues[1].Kind)
	assert.Equal(t, "extra", issues[1].Column)
}

func TestValidateSnapshot_ConformingData(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	snap := models.NewSnapshot([]string{"id", "sku", "qty", "meta", "updated_at"}, []models.Row{
		{"id": int64(1), "sku": "A", "qty": 2.0, "meta": map[string]any{"k": 1}, "updated_at": "2024-01-01T00:00:00Z"},
		{"id": int64(2), "sku": nil, "qty": nil, "meta": nil, "updated_at": nil},
	})

	assert.Empty(t, v.ValidateSnapshot(testSchema(t), snap))
}

func seasonsSchema(t *testing.T) *models.TableSchema {
	t.Helper()
	s, err := models.NewTableSchema("standings", []models.ColumnDescriptor{
		{Name: "team", UDTName: "varchar", PrimaryKey: true},
		{Name: "season", UDTName: "int4", PrimaryKey: true},
		{Name: "division", UDTName: "varchar", Nullable: true},
		{Name: "wins", UDTName: "int4", Nullable: true},
		{Name: "updated_at", UDTName: "timestamptz", Nullable: true},
	})
	require.NoError(t, err)
	return s
}

func TestValidateSnapshot_CompositePrimaryKey(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	schema := seasonsSchema(t)

	t.Run("parts repeat across rows", func(t *testing.T) {
		snap := models.NewSnapshot(nil, []models.Row{
			{"team": "KC", "season": int64(2023), "division": "West", "wins": int64(11), "updated_at": nil},
			{"team": "KC", "season": int64(2024), "division": "West", "wins": int64(15), "updated_at": nil},
			{"team": "BUF", "season": int64(2024), "division": "East", "wins": int64(13), "updated_at": nil},
		})

		assert.Empty(t, v.ValidateSnapshot(schema, snap))
	})

	t.Run("duplicated tuple", func(t *testing.T) {
		snap := models.NewSnapshot(nil, []models.Row{
			{"team": "KC", "season": int64(2024), "division": "West", "wins": int64(15), "updated_at": nil},
			{"team": "BUF", "season": int64(2024), "division": "East", "wins": int64(13), "updated_at": nil},
			{"team": "KC", "season": 2024.0, "division": "West", "wins": int64(14), "updated_at": nil},
		})

		issues := v.ValidateSnapshot(schema, snap)

		require.Len(t, issues, 1)
		assert.Equal(t, models.IssueUniqueness, issues[0].Kind)
		assert.Equal(t, "team,season", issues[0].Column)
		assert.Contains(t, issues[0].Message, "team=KC")
	})

	t.Run("null part reported as nullability only", func(t *testing.T) {
		snap := models.NewSnapshot(nil, []models.Row{
			{"team": "KC", "season": nil, "division": nil, "wins": nil, "updated_at": nil},
			{"team": "KC", "season": nil, "division": nil, "wins": nil, "updated_at": nil},
		})

		issues := v.ValidateSnapshot(schema, snap)

		require.Len(t, issues, 1)
		assert.Equal(t, models.IssueNullability, issues[0].Kind)
		assert.Equal(t, "season", issues[0].Column)
	})

	t.Run("field scoped", func(t *testing.T) {
		snap := models.NewSnapshot(nil, []models.Row{
			{"team": "KC", "season": int64(2023)},
			{"team": "KC", "season": int64(2024)},
		})

		assert.NoError(t, v.Validate(context.Background(), SnapshotTarget{Schema: schema, Snapshot: snap}, "team"))
	})
}

func TestValidateSnapshot_CompositeUniqueConstraintColumn(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	// division belongs to a UNIQUE (division, season) constraint, which the
	// catalog does not report as a per-column unique flag.
	snap := models.NewSnapshot(nil, []models.Row{
		{"team": "KC", "season": int64(2024), "division": "West", "wins": int64(15), "updated_at": nil},
		{"team": "LV", "season": int64(2024), "division": "West", "wins": int64(4), "updated_at": nil},
	})

	assert.Empty(t, v.ValidateSnapshot(seasonsSchema(t), snap))
}

func TestValidateSnapshot_SingleColumnKeyStillChecked(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	snap := models.NewSnapshot([]string{"id", "sku", "qty", "meta", "updated_at"}, []models.Row{
		{"id": int64(1), "sku": "A", "qty": nil, "meta": nil, "updated_at": nil},
		{"id": int64(1), "sku": "B", "qty": nil, "meta": nil, "updated_at": nil},
	})

	issues := v.ValidateSnapshot(testSchema(t), snap)

	require.Len(t, issues, 1)
	assert.Equal(t, models.IssueUniqueness, issues[0].Kind)
	assert.Equal(t, "id", issues[0].Column)
}

func TestValidate_ReturnsSchemaViolation(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	snap := models.NewSnapshot([]string{"id", "sku", "qty", "meta", "updated_at"}, []models.Row{
		{"id": int64(1), "sku": "A", "qty": int64(70000), "meta": nil, "updated_at": nil},
	})

	err := v.Validate(context.Background(), SnapshotTarget{Schema: testSchema(t), Snapshot: snap})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSchemaViolation))

	var sv *models.SchemaViolationError
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, "orders", sv.Table)
	assert.Equal(t, []string{"qty"}, sv.Issues.Columns())
}

func TestValidate_FieldScoping(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	snap := models.NewSnapshot([]string{"id", "qty"}, []models.Row{{"id": int64(1), "qty": int64(70000)}})
	target := &SnapshotTarget{Schema: testSchema(t), Snapshot: snap}

	assert.NoError(t, v.Validate(context.Background(), target, "id"))
	assert.ErrorIs(t, v.Validate(context.Background(), target, "qty"), models.ErrSchemaViolation)
	assert.ErrorIs(t, v.Validate(context.Background(), target, "nope"), ErrUnknownField)
}

func TestValidate_Errors(t *testing.T) {
	v := NewTypeCompatibilityValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, SnapshotTarget{}), ErrNilSchema)
	assert.ErrorIs(t, v.Validate(ctx, SnapshotTarget{Schema: testSchema(t)}), ErrNilSnapshot)
}
