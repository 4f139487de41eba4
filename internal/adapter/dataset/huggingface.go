// Package dataset loads labeled classification datasets for the evaluation harness.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/service"
)

// Label fields tried in order; TREC names its coarse label "coarse_label".
var labelFields = []string{"label", "coarse_label"}

const (
	textField = "text"

	// The datasets server caps a rows page at 100.
	maxPageSize = 100
)

// ErrNoLabelField is returned when a dataset has no class-label feature
var ErrNoLabelField = errors.New("dataset has no class label feature")

type splitsResponse struct {
	Splits []struct {
		Dataset string `json:"dataset"`
		Config  string `json:"config"`
		Split   string `json:"split"`
	} `json:"splits"`
}

type feature struct {
	Type  string   `json:"_type"`
	Names []string `json:"names"`
}

type infoResponse struct {
	DatasetInfo struct {
		Features map[string]feature `json:"features"`
	} `json:"dataset_info"`
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int                        `json:"row_idx"`
		Row    map[string]json.RawMessage `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// HuggingFaceProvider reads datasets from the Hugging Face datasets-server REST API
type HuggingFaceProvider struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// NewHuggingFaceProvider creates a provider against baseURL,
// e.g. https://datasets-server.huggingface.co
func NewHuggingFaceProvider(baseURL string, timeout time.Duration) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   maxPageSize,
	}
}

var _ service.DatasetProvider = (*HuggingFaceProvider)(nil)

// Load fetches the records of split, resolving label names from the dataset features
func (p *HuggingFaceProvider) Load(ctx context.Context, name, split string) (*entity.Dataset, error) {
	sr, err := entity.ParseSplit(split)
	if err != nil {
		return nil, err
	}

	cfgName, err := p.resolveConfig(ctx, name, sr.Name)
	if err != nil {
		return nil, err
	}

	labelField, names, err := p.labelNames(ctx, name, cfgName)
	if err != nil {
		return nil, err
	}

	records, err := p.rows(ctx, name, cfgName, sr, labelField)
	if err != nil {
		return nil, err
	}

	return &entity.Dataset{
		Name:       name,
		Split:      sr.String(),
		LabelNames: names,
		Records:    records,
	}, nil
}

func (p *HuggingFaceProvider) resolveConfig(ctx context.Context, name, split string) (string, error) {
	var resp splitsResponse
	if err := p.get(ctx, "/splits", url.Values{"dataset": {name}}, &resp); err != nil {
		return "", err
	}
	for _, s := range resp.Splits {
		if s.Split == split {
			return s.Config, nil
		}
	}
	return "", fmt.Errorf("dataset %s has no split %q", name, split)
}

func (p *HuggingFaceProvider) labelNames(ctx context.Context, name, cfgName string) (string, []string, error) {
	var resp infoResponse
	if err := p.get(ctx, "/info", url.Values{"dataset": {name}, "config": {cfgName}}, &resp); err != nil {
		return "", nil, err
	}
	for _, field := range labelFields {
		if f, ok := resp.DatasetInfo.Features[field]; ok && len(f.Names) > 0 {
			return field, f.Names, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrNoLabelField, name)
}

func (p *HuggingFaceProvider) rows(ctx context.Context, name, cfgName string, sr entity.SplitRange, labelField string) ([]entity.DatasetRecord, error) {
	var records []entity.DatasetRecord
	offset := sr.Offset

	for sr.Length < 0 || len(records) < sr.Length {
		length := p.pageSize
		if sr.Length >= 0 && sr.Length-len(records) < length {
			length = sr.Length - len(records)
		}

		params := url.Values{
			"dataset": {name},
			"config":  {cfgName},
			"split":   {sr.Name},
			"offset":  {strconv.Itoa(offset)},
			"length":  {strconv.Itoa(length)},
		}
		var resp rowsResponse
		if err := p.get(ctx, "/rows", params, &resp); err != nil {
			return nil, err
		}

		for _, r := range resp.Rows {
			rec, err := decodeRecord(r.Row, labelField)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r.RowIdx, err)
			}
			records = append(records, rec)
		}

		offset += len(resp.Rows)
		if len(resp.Rows) < length || offset >= resp.NumRowsTotal {
			break
		}
	}

	return records, nil
}

func decodeRecord(row map[string]json.RawMessage, labelField string) (entity.DatasetRecord, error) {
	var rec entity.DatasetRecord
	raw, ok := row[textField]
	if !ok {
		return rec, fmt.Errorf("missing %q field", textField)
	}
	if err := json.Unmarshal(raw, &rec.Text); err != nil {
		return rec, fmt.Errorf("decode %q: %w", textField, err)
	}
	raw, ok = row[labelField]
	if !ok {
		return rec, fmt.Errorf("missing %q field", labelField)
	}
	if err := json.Unmarshal(raw, &rec.Label); err != nil {
		return rec, fmt.Errorf("decode %q: %w", labelField, err)
	}
	return rec, nil
}

func (p *HuggingFaceProvider) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("datasets server returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("datasets server returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
