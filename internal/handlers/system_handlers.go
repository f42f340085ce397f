package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/apierror"
	"github.com/Werneck0live/shukatsu-tracker/internal/utils"
)

const (
	APIName    = "就活管理API"
	APIVersion = "1.0.0"
)

type endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []endpoint{
	{http.MethodGet, "/", "API info"},
	{http.MethodGet, "/health", "API and database status"},
	{http.MethodGet, "/docs", "this list"},
	{http.MethodGet, "/companies/", "list companies (skip, limit, status, industry, priority, sort_by, order)"},
	{http.MethodPost, "/companies/", "create a company"},
	{http.MethodGet, "/companies/search/", "search by company_name (keyword)"},
	{http.MethodGet, "/companies/{id}", "get a company"},
	{http.MethodPut, "/companies/{id}", "partial update"},
	{http.MethodDelete, "/companies/{id}", "delete a company"},
	{http.MethodGet, "/statistics/", "counts by status"},
	{http.MethodPost, "/ai/company-info/", "AI suggestion from company_name"},
}

// Root responde só em "/" exato; o resto do fallback vira 404.
func (h *CompanyHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		utils.WriteError(w, apierror.NotFound)
		return
	}
	if r.Method != http.MethodGet {
		utils.WriteError(w, apierror.MethodNotAllowed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": APIName,
		"version": APIVersion,
		"status":  "running",
		"docs":    "/docs",
	})
}

func (h *CompanyHandler) Docs(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"name":      APIName,
		"version":   APIVersion,
		"endpoints": endpoints,
	})
}

func (h *CompanyHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.Repo.Ping(ctx); err != nil {
		database = "error: " + err.Error()
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"api":       "running",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Register monta as rotas da API no mux.
func (h *CompanyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/docs", h.Docs)
	mux.HandleFunc("/companies", h.Companies)
	mux.HandleFunc("/companies/", h.CompanyRoutes)
	mux.HandleFunc("/statistics", h.Statistics)
	mux.HandleFunc("/statistics/", h.Statistics)
	mux.HandleFunc("/ai/company-info", h.CompanyInfo)
	mux.HandleFunc("/ai/company-info/", h.CompanyInfo)
}
