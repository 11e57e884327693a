// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the batch search, reachability probe and archive
// download over HTTP, plus the browser page that drives them.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/dblp-bibtex/internal/export"
	"github.com/pdiddy/dblp-bibtex/internal/logging"
	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

//go:embed static/index.html
var indexHTML []byte

// Runner executes a batch of queries. *batch.Orchestrator implements it.
type Runner interface {
	Run(ctx context.Context, queries []string, maxResults int) types.BatchResponse
}

// Prober reports upstream reachability. *dblp.Client implements it.
type Prober interface {
	Reachable(ctx context.Context) bool
}

// Handler serves the HTTP API.
type Handler struct {
	runner     Runner
	prober     Prober
	defaultMax int
	exportDir  string
	logger     *zap.Logger
}

// NewHandler returns a Handler. defaultMax is the per-query cap used when a
// search request omits max_results. Download archives are written to
// exportDir, or the system temp directory when it is "".
func NewHandler(runner Runner, prober Prober, defaultMax int, exportDir string, logger *zap.Logger) *Handler {
	return &Handler{
		runner:     runner,
		prober:     prober,
		defaultMax: defaultMax,
		exportDir:  exportDir,
		logger:     logging.OrNop(logger),
	}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(h.logger))

	r.GET("/", h.index)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.RegisterRoutes(r.Group("/api"))
	return r
}

// RegisterRoutes mounts the JSON endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.search)
	rg.GET("/check-dblp", h.checkDBLP)
	rg.POST("/download", h.download)
}

type searchReq struct {
	Keywords   []string `json:"keywords" binding:"required"`
	MaxResults *int     `json:"max_results"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	maxResults := h.defaultMax
	if req.MaxResults != nil {
		maxResults = *req.MaxResults
	}
	if maxResults < 1 || maxResults > types.MaxResultsLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("max_results must be between 1 and %d", types.MaxResultsLimit)})
		return
	}

	// A batch runs to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	c.JSON(http.StatusOK, h.runner.Run(ctx, req.Keywords, maxResults))
}

func (h *Handler) checkDBLP(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reachable": h.prober.Reachable(c.Request.Context())})
}

// downloadItem is one archive entry as posted by the browser. Title, authors
// and bibtex must be present and non-null; empty strings are allowed. Year is
// optional.
type downloadItem struct {
	Title   *string `json:"title" binding:"required"`
	Authors *string `json:"authors" binding:"required"`
	Year    *string `json:"year"`
	BibTeX  *string `json:"bibtex" binding:"required"`
}

// toResultItems converts posted items. A null element decodes to an item
// with every field missing and is rejected here too.
func toResultItems(in []downloadItem) ([]types.ResultItem, error) {
	items := make([]types.ResultItem, len(in))
	for i, d := range in {
		if d.Title == nil || d.Authors == nil || d.BibTeX == nil {
			return nil, fmt.Errorf("item %d: title, authors and bibtex are required", i)
		}
		items[i] = types.ResultItem{Title: *d.Title, Authors: *d.Authors, BibTeX: *d.BibTeX}
		if d.Year != nil {
			items[i].Year = *d.Year
		}
	}
	return items, nil
}

func (h *Handler) download(c *gin.Context) {
	var req []downloadItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	items, err := toResultItems(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	path, err := export.WriteTemp(h.exportDir, items)
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.logger.Debug("archive written", zap.String("path", path), zap.Int("items", len(items)))

	c.Header("Content-Type", export.MediaType)
	c.FileAttachment(path, export.Filename)
}

func (h *Handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
