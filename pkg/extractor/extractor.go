// pkg/extractor/extractor.go
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/config"
	"github.com/eciem/practicas-etl/pkg/model"
)

// Client downloads complete source tables from the provider API, one page at
// a time. It is purely functional with respect to local state: the only side
// effect is network I/O.
type Client struct {
	http     *resty.Client
	token    string
	pageSize int
	logger   *zap.Logger
}

// NewClient creates a provider API client from configuration
func NewClient(cfg *config.APIConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("API configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout)

	return &Client{
		http:     http,
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		logger:   logger,
	}, nil
}

// page is one decoded page of the provider response. The expected shape is:
//
//	{"tabla": "...", "limit": 2000, "offset": 0, "total": 1576, "filas": [ {...} ]}
type page struct {
	rows  []json.RawMessage
	total int
}

// ExtractTable downloads every record of one source table, advancing the
// offset until a page comes back empty or the provider-reported total is
// reached. Any page-level failure aborts extraction for this table.
func (c *Client) ExtractTable(ctx context.Context, table string) (*model.Table, error) {
	c.logger.Info("Downloading source table", zap.String("table", table))

	result := model.NewTable()
	offset := 0
	pageNum := 1

	for {
		c.logger.Info("Requesting page",
			zap.String("table", table),
			zap.Int("offset", offset),
			zap.Int("page", pageNum))

		p, err := c.fetchPage(ctx, table, offset)
		if err != nil {
			return nil, err
		}

		c.logger.Info("Page received",
			zap.String("table", table),
			zap.Int("page", pageNum),
			zap.Int("rows", len(p.rows)))

		if len(p.rows) == 0 {
			break
		}

		for _, raw := range p.rows {
			rec, err := decodeRow(raw, result)
			if err != nil {
				return nil, &PayloadShapeError{
					Table:   table,
					Reason:  err.Error(),
					Preview: bodyPreview(raw),
				}
			}
			result.Append(rec)
		}

		offset += c.pageSize
		pageNum++
		if offset >= p.total {
			break
		}
	}

	return result, nil
}

// fetchPage performs a single GET and validates the payload shape.
func (c *Client) fetchPage(ctx context.Context, table string, offset int) (*page, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"tabla":  table,
			"token":  c.token,
			"limit":  strconv.Itoa(c.pageSize),
			"offset": strconv.Itoa(offset),
		}).
		Get("")
	if err != nil {
		return nil, &TransportError{
			URL: redactURL(c.http.BaseURL),
			Err: err,
		}
	}

	effectiveURL := redactURL(resp.Request.URL)

	if resp.IsError() {
		return nil, &TransportError{
			URL:        effectiveURL,
			StatusCode: resp.StatusCode(),
			Preview:    bodyPreview(resp.Body()),
		}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &PayloadShapeError{
			URL:     effectiveURL,
			Table:   table,
			Reason:  "malformed JSON body",
			Preview: bodyPreview(resp.Body()),
		}
	}

	rawRows, ok := envelope["filas"]
	if !ok {
		return nil, &PayloadShapeError{
			URL:     effectiveURL,
			Table:   table,
			Reason:  "missing 'filas' key",
			Preview: bodyPreview(resp.Body()),
		}
	}

	p := &page{}
	if err := json.Unmarshal(rawRows, &p.rows); err != nil {
		return nil, &PayloadShapeError{
			URL:     effectiveURL,
			Table:   table,
			Reason:  "'filas' is not an array of objects",
			Preview: bodyPreview(resp.Body()),
		}
	}

	if rawTotal, ok := envelope["total"]; ok {
		if err := json.Unmarshal(rawTotal, &p.total); err != nil {
			p.total = 0
		}
	}

	return p, nil
}

// decodeRow turns one JSON row object into a string record, registering
// columns on the table in the order the source declares them.
func decodeRow(raw json.RawMessage, t *model.Table) (model.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("row is not valid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("row is not a JSON object")
	}

	rec := make(model.Record)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading row key: %w", err)
		}
		key := keyTok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("reading value for column %s: %w", key, err)
		}

		rec[key] = stringifyValue(value)
		t.AddColumn(key)
	}

	return rec, nil
}

// stringifyValue renders a decoded JSON value as a record string. Nulls
// become the empty string so downstream stages have one missing-value form.
func stringifyValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(encoded)
	}
}
