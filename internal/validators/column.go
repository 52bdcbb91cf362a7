package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

// ValidateColumn never fails; it returns the findings for the caller to act
// on. A non-nullable column holding any null is a violation even when every
// value is null.
func (v *TypeCompatibilityValidator) ValidateColumn(col models.ColumnDescriptor, values []any, local models.LocalType) models.Issues {
	var issues models.Issues

	if !col.Nullable && hasNull(values) {
		issues = append(issues, models.Issue{
			Kind:    models.IssueNullability,
			Column:  col.Name,
			Message: "column is not nullable but contains nulls",
		})
	}

	if col.IsUnique() {
		if dup, ok := firstDuplicate(values); ok {
			issues = append(issues, models.Issue{
				Kind:    models.IssueUniqueness,
				Column:  col.Name,
				Message: fmt.Sprintf("column is unique but value %q is duplicated", dup),
			})
		}
	}

	if !v.IsColumnWritable(col, values, local) {
		issues = append(issues, models.Issue{
			Kind:    models.IssueType,
			Column:  col.Name,
			Message: fmt.Sprintf("local type %s cannot be written to %s", local, describeType(col)),
		})
	}

	if !v.ValidateSemiStructured(col, values) {
		kind, what := models.IssueJSON, "JSON"
		if col.Type == models.Point {
			kind, what = models.IssuePoint, "point"
		}
		issues = append(issues, models.Issue{
			Kind:    kind,
			Column:  col.Name,
			Message: fmt.Sprintf("column contains invalid %s values", what),
		})
	}

	return issues
}

// ValidateSnapshot checks every declared column. Declared columns missing
// from the snapshot and snapshot columns unknown to the table are findings
// too. A composite primary key is unique as a tuple, so its parts are not
// checked one by one.
func (v *TypeCompatibilityValidator) ValidateSnapshot(schema *models.TableSchema, snapshot *models.Snapshot) models.Issues {
	var issues models.Issues

	pks := schema.PrimaryKeys()
	composite := len(pks) > 1
	keysPresent := true

	for _, col := range schema.Columns {
		if !snapshot.HasColumn(col.Name) {
			issues = append(issues, models.Issue{
				Kind:    models.IssueMissing,
				Column:  col.Name,
				Message: "column not found in data",
			})
			if col.PrimaryKey {
				keysPresent = false
			}
			continue
		}
		if composite && col.PrimaryKey {
			col.PrimaryKey = false
		}
		issues = append(issues, v.ValidateColumn(col, snapshot.Values(col.Name), snapshot.Type(col.Name))...)
	}

	if composite && keysPresent {
		if dup, ok := firstDuplicateKey(snapshot, pks); ok {
			issues = append(issues, models.Issue{
				Kind:    models.IssueUniqueness,
				Column:  strings.Join(pks, ","),
				Message: fmt.Sprintf("primary key is unique but %s is duplicated", dup),
			})
		}
	}

	for _, name := range snapshot.Columns {
		if _, ok := schema.Column(name); !ok {
			issues = append(issues, models.Issue{
				Kind:    models.IssueUnknown,
				Column:  name,
				Message: fmt.Sprintf("column is not declared by table %s", schema.Table),
			})
		}
	}

	return issues
}

// SnapshotTarget pairs data with the schema it will be written to.
type SnapshotTarget struct {
	Schema   *models.TableSchema
	Snapshot *models.Snapshot
}

// Validate implements Validator for SnapshotTarget values. fields restricts
// validation to the named columns. Findings are returned as
// *models.SchemaViolationError.
func (v *TypeCompatibilityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case SnapshotTarget:
		return v.validateTarget(ctx, value, fields...)
	case *SnapshotTarget:
		return v.validateTarget(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *TypeCompatibilityValidator) validateTarget(ctx context.Context, target SnapshotTarget, fields ...string) error {
	if target.Schema == nil {
		return ErrNilSchema
	}
	if target.Snapshot == nil {
		return ErrNilSnapshot
	}

	var issues models.Issues
	if len(fields) == 0 {
		issues = v.ValidateSnapshot(target.Schema, target.Snapshot)
	} else {
		for _, f := range fields {
			if err := ctx.Err(); err != nil {
				return err
			}
			col, ok := target.Schema.Column(f)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
			if len(target.Schema.PrimaryKeys()) > 1 {
				col.PrimaryKey = false
			}
			issues = append(issues, v.ValidateColumn(col, target.Snapshot.Values(f), target.Snapshot.Type(f))...)
		}
	}

	if len(issues) > 0 {
		return &models.SchemaViolationError{Table: target.Schema.Table, Issues: issues}
	}
	return nil
}

func describeType(col models.ColumnDescriptor) string {
	if col.UDTName != "" {
		return col.UDTName
	}
	return col.Type.String()
}

func hasNull(values []any) bool {
	for _, v := range values {
		if isNull(v) {
			return true
		}
	}
	return false
}

func firstDuplicate(values []any) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if isNull(v) {
			continue
		}
		key := utils.CanonicalValue(v)
		if _, ok := seen[key]; ok {
			return key, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}

// firstDuplicateKey looks for a repeated primary-key tuple. Rows with a null
// key part are skipped; nullability reports them.
func firstDuplicateKey(snapshot *models.Snapshot, pks []string) (string, bool) {
	seen := make(map[string]struct{}, snapshot.Len())
	for _, row := range snapshot.Rows {
		parts := make([]string, len(pks))
		complete := true
		for i, pk := range pks {
			if isNull(row[pk]) {
				complete = false
				break
			}
			parts[i] = pk + "=" + utils.CanonicalValue(row[pk])
		}
		if !complete {
			continue
		}
		key := row.Key(pks, utils.CanonicalValue)
		if _, ok := seen[key]; ok {
			return "(" + strings.Join(parts, ", ") + ")", true
		}
		seen[key] = struct{}{}
	}
	return "", false
}
