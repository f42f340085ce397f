// Package client é o cliente HTTP tipado da API de companies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// HTTPError é devolvido para qualquer resposta fora de 2xx.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Detail)
}

// ListParams: valores zero não são enviados.
type ListParams struct {
	Status   string
	Industry string
	Priority int
	SortBy   string
	Order    string
	Skip     int
	Limit    int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Industry != "" {
		v.Set("industry", p.Industry)
	}
	if p.Priority != 0 {
		v.Set("priority", strconv.Itoa(p.Priority))
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.Skip != 0 {
		v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit != 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

type Client struct {
	base string
	http *http.Client
}

// New cria o cliente; hc nil usa http.DefaultClient. Sem timeout próprio: vale o ctx do chamador.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) List(ctx context.Context, p ListParams) ([]models.Company, error) {
	path := "/companies/"
	if q := p.values().Encode(); q != "" {
		path += "?" + q
	}
	var out []models.Company
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*models.Company, error) {
	var out models.Company
	if err := c.do(ctx, http.MethodGet, companyPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, in models.CompanyCreate) (*models.Company, error) {
	var out models.Company
	if err := c.do(ctx, http.MethodPost, "/companies/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update envia só os campos setados em in (parcial).
func (c *Client) Update(ctx context.Context, id int64, in models.CompanyUpdate) (*models.Company, error) {
	var out models.Company
	if err := c.do(ctx, http.MethodPut, companyPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, companyPath(id), nil, nil)
}

func (c *Client) Search(ctx context.Context, keyword string) ([]models.Company, error) {
	var out []models.Company
	path := "/companies/search/?" + url.Values{"keyword": {keyword}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Statistics(ctx context.Context) (models.Statistics, error) {
	var out models.Statistics
	err := c.do(ctx, http.MethodGet, "/statistics/", nil, &out)
	return out, err
}

// CompanyInfo chama o endpoint de IA; o campo Error da resposta não vira erro Go.
func (c *Client) CompanyInfo(ctx context.Context, name string) (models.CompanyInfo, error) {
	var out models.CompanyInfo
	err := c.do(ctx, http.MethodPost, "/ai/company-info/", models.CompanyInfoRequest{CompanyName: name}, &out)
	return out, err
}

func companyPath(id int64) string {
	return "/companies/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readHTTPError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func readHTTPError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	e := &HTTPError{StatusCode: resp.StatusCode}

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && len(body.Detail) > 0 {
		var s string
		if json.Unmarshal(body.Detail, &s) == nil {
			e.Detail = s
		} else {
			e.Detail = string(body.Detail)
		}
		return e
	}
	e.Detail = strings.TrimSpace(string(raw))
	return e
}
