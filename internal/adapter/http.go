package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
	"github.com/go-resty/resty/v2"
)

const (
	defaultPageSize       = 500
	defaultDeletePageSize = 30
)

type restAdapter struct {
	client *utils.HTTPClient

	schema         string
	pageSize       int
	deletePageSize int

	logger *logger.Logger
}

// NewRestAdapter constructs the PostgREST implementation of [RestAdapter].
// It normalises and validates cfg.RestURL and configures the underlying HTTP
// client with the resolved base URL, request timeout, retry policy and the
// API key headers.
//
// Returns an error if cfg.RestURL is empty or cannot be parsed as a valid URL.
func NewRestAdapter(cfg config.Remote, logger *logger.Logger) (RestAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.RestURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote rest url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.Timeout, cfg.RetryCount, cfg.RetryWait)
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		client.SetHeader("apikey", key).SetAuthToken(key)
	}

	a := &restAdapter{
		client:         client,
		schema:         cfg.Schema,
		pageSize:       cfg.PageSize,
		deletePageSize: cfg.DeletePageSize,
		logger:         logger,
	}
	if a.pageSize <= 0 {
		a.pageSize = defaultPageSize
	}
	if a.deletePageSize <= 0 {
		a.deletePageSize = defaultDeletePageSize
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyRestURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ReadAll implements [BulkReader]. It GETs /<table>?select=* page by page
// using offset and limit and stops at the first short page. Numbers are kept
// as json.Number so integer columns survive without float rounding.
func (h *restAdapter) ReadAll(ctx context.Context, table string, orderBy ...string) (*models.Snapshot, error) {
	log := logger.FromContextOr(ctx, h.logger)

	var rows []models.Row
	for page := 1; ; page++ {
		req := h.readRequest(ctx).
			SetQueryParam("select", "*").
			SetQueryParam("offset", strconv.Itoa(len(rows))).
			SetQueryParam("limit", strconv.Itoa(h.pageSize))
		if len(orderBy) > 0 {
			req.SetQueryParam("order", orderClause(orderBy))
		}

		resp, err := req.Get(tablePath(table))
		if err != nil {
			return nil, fmt.Errorf("read %s page %d: %w", table, page, transportError(ctx, err))
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, fmt.Errorf("read %s page %d: %w", table, page, err)
		}

		pageRows, err := decodePage(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("read %s page %d: %w", table, page, err)
		}
		rows = append(rows, pageRows...)

		log.Debug().Str("table", table).Int("page", page).Int("rows", len(pageRows)).Msg("downloaded page")
		if len(pageRows) < h.pageSize {
			break
		}
	}

	log.Info().Str("table", table).Int("rows", len(rows)).Msg("downloaded table")
	return models.NewSnapshot(nil, rows), nil
}

// Upsert implements [BulkWriter]. Rows are POSTed in pages with
// merge-duplicates resolution on the onConflict columns.
func (h *restAdapter) Upsert(ctx context.Context, table string, rows []models.Row, onConflict []string) error {
	if len(onConflict) == 0 {
		return fmt.Errorf("upsert %s: %w", table, ErrNoConflictTarget)
	}
	log := logger.FromContextOr(ctx, h.logger)

	pages := pageCount(len(rows), h.pageSize)
	for page := 0; page < pages; page++ {
		batch := rows[page*h.pageSize : min((page+1)*h.pageSize, len(rows))]

		payload, err := json.Marshal(batch)
		if err != nil {
			return fmt.Errorf("upsert %s page %d: encode rows: %w", table, page+1, err)
		}

		resp, err := h.writeRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
			SetQueryParam("on_conflict", strings.Join(onConflict, ",")).
			SetBody(payload).
			Post(tablePath(table))
		if err != nil {
			return fmt.Errorf("upsert %s page %d: %w", table, page+1, transportError(ctx, err))
		}
		if err = mapHTTPError(resp); err != nil {
			return fmt.Errorf("upsert %s page %d: %w", table, page+1, err)
		}

		log.Debug().Str("table", table).Int("page", page+1).Int("pages", pages).Msg("upserted page")
	}

	log.Info().Str("table", table).Int("rows", len(rows)).Msg("upserted rows")
	return nil
}

// Delete implements [BulkWriter]. Keys are sent in the query string, so pages
// are small: a single key column becomes col=in.(...), a composite key an
// or=(and(...),...) tree.
func (h *restAdapter) Delete(ctx context.Context, table string, keys []models.Row) error {
	if len(keys) == 0 {
		return nil
	}
	columns, err := keyColumns(keys)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	log := logger.FromContextOr(ctx, h.logger)

	pages := pageCount(len(keys), h.deletePageSize)
	for page := 0; page < pages; page++ {
		batch := keys[page*h.deletePageSize : min((page+1)*h.deletePageSize, len(keys))]

		req := h.writeRequest(ctx).SetHeader("Prefer", "return=minimal")
		if len(columns) == 1 {
			req.SetQueryParam(columns[0], inFilter(columns[0], batch))
		} else {
			req.SetQueryParam("or", orFilter(columns, batch))
		}

		resp, err := req.Delete(tablePath(table))
		if err != nil {
			return fmt.Errorf("delete %s page %d: %w", table, page+1, transportError(ctx, err))
		}
		if err = mapHTTPError(resp); err != nil {
			return fmt.Errorf("delete %s page %d: %w", table, page+1, err)
		}

		log.Debug().Str("table", table).Int("page", page+1).Int("pages", pages).Msg("deleted page")
	}

	log.Info().Str("table", table).Int("rows", len(keys)).Msg("deleted rows")
	return nil
}

func (h *restAdapter) readRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.schema != "" {
		req.SetHeader("Accept-Profile", h.schema)
	}
	return req
}

func (h *restAdapter) writeRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.schema != "" {
		req.SetHeader("Content-Profile", h.schema)
	}
	return req
}

func tablePath(table string) string {
	return "/" + url.PathEscape(table)
}

func pageCount(n, size int) int {
	return (n + size - 1) / size
}

// transportError keeps caller cancellation intact and classifies everything
// else as the remote being unreachable.
func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return errors.Join(ctx.Err(), err)
	}
	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}

func decodePage(body []byte) ([]models.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rows []models.Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingPage, err)
	}
	return rows, nil
}

func orderClause(columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + ".asc"
	}
	return strings.Join(parts, ",")
}

func keyColumns(keys []models.Row) ([]string, error) {
	columns := models.NewSnapshot(nil, keys[:1]).Columns
	for _, k := range keys {
		if len(k) != len(columns) {
			return nil, ErrMixedKeyColumns
		}
		for _, c := range columns {
			v, ok := k[c]
			if !ok {
				return nil, ErrMixedKeyColumns
			}
			if v == nil {
				return nil, fmt.Errorf("%w: %s", ErrNullPrimaryKey, c)
			}
		}
	}
	return columns, nil
}

func inFilter(column string, keys []models.Row) string {
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = filterValue(k[column])
	}
	return "in.(" + strings.Join(values, ",") + ")"
}

func orFilter(columns []string, keys []models.Row) string {
	conds := make([]string, len(keys))
	for i, k := range keys {
		parts := make([]string, len(columns))
		for j, c := range columns {
			parts[j] = c + ".eq." + filterValue(k[c])
		}
		conds[i] = "and(" + strings.Join(parts, ",") + ")"
	}
	return "(" + strings.Join(conds, ",") + ")"
}

// filterValue renders v for a PostgREST filter, double-quoting values that
// contain reserved characters.
func filterValue(v any) string {
	s := utils.CanonicalValue(v)
	if s != "" && !strings.ContainsAny(s, `,.:()" \`) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
