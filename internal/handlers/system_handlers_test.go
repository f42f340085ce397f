package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Werneck0live/shukatsu-tracker/internal/ai"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

func TestRoot(t *testing.T) {
	h := newHandler(&repoMock{}, nil)

	rr := serve(h, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
	}
	var got map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if got["message"] != "就活管理API" || got["version"] != "1.0.0" || got["status"] != "running" {
		t.Fatalf("unexpected: %v", got)
	}

	rr = serve(h, http.MethodGet, "/nada", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path: status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name string
		ping error
		want string
	}{
		{"connected", nil, "connected"},
		{"db down", errors.New("dial tcp: refused"), "error: dial tcp: refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rm := &repoMock{PingFn: func(context.Context) error { return tc.ping }}
			rr := serve(newHandler(rm, nil), http.MethodGet, "/health", "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
			}
			var got map[string]string
			_ = json.Unmarshal(rr.Body.Bytes(), &got)
			if got["status"] != "healthy" || got["api"] != "running" || got["database"] != tc.want || got["timestamp"] == "" {
				t.Fatalf("unexpected: %v", got)
			}
		})
	}
}

func TestDocs_ListsEndpoints(t *testing.T) {
	rr := serve(newHandler(&repoMock{}, nil), http.MethodGet, "/docs", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "/ai/company-info/") {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCompanyInfo(t *testing.T) {
	h := newHandler(&repoMock{}, nil)
	h.AI = &aiMock{CompanyInfoFn: func(_ context.Context, name string) models.CompanyInfo {
		if name != "楽天" {
			t.Fatalf("name=%q", name)
		}
		return models.CompanyInfo{Industry: models.Ptr("IT"), Location: models.Ptr("東京")}
	}}

	rr := serve(h, http.MethodPost, "/ai/company-info/", `{"company_name": " 楽天 "}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var got models.CompanyInfo
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if got.Industry == nil || *got.Industry != "IT" || got.Error != nil {
		t.Fatalf("unexpected: %+v", got)
	}
	// todas as chaves presentes, mesmo nulas
	for _, k := range []string{"industry", "job_type", "location", "salary", "website_url", "error"} {
		if !strings.Contains(rr.Body.String(), `"`+k+`"`) {
			t.Fatalf("missing key %s: %s", k, rr.Body.String())
		}
	}
}

func TestCompanyInfo_NoProvider(t *testing.T) {
	rr := serve(newHandler(&repoMock{}, nil), http.MethodPost, "/ai/company-info/", `{"company_name":"A"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
	}
	var got models.CompanyInfo
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if got.Error == nil || *got.Error != ai.MsgUnavailable {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestCompanyInfo_BadRequest(t *testing.T) {
	h := newHandler(&repoMock{}, nil)
	for _, body := range []string{`{}`, `{"company_name":"  "}`, `nope`} {
		rr := serve(h, http.MethodPost, "/ai/company-info/", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d want=%d", body, rr.Code, http.StatusBadRequest)
		}
	}
	rr := serve(h, http.MethodGet, "/ai/company-info/", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusMethodNotAllowed)
	}
}
