package api

import (
	"bytes"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"scheduleboard/server/internal/aggregate"
	"scheduleboard/server/internal/auth"
	"scheduleboard/server/internal/dataset"
	"scheduleboard/server/internal/export"
	"scheduleboard/server/internal/filter"
	"scheduleboard/server/internal/metrics"
	"scheduleboard/server/internal/models"
)

// Options are the request-independent settings of the dashboard handlers
type Options struct {
	PublicCategory string
	ExportFilename string
	CookieName     string
	CookieSecure   bool
}

type Handler struct {
	store    *dataset.Store
	logger   *logrus.Logger
	auth     *auth.Authenticator
	sessions *auth.SessionStore
	metrics  *metrics.Collector
	opts     Options
}

func NewHandler(store *dataset.Store, authenticator *auth.Authenticator, sessions *auth.SessionStore, collector *metrics.Collector, opts Options, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}

	return &Handler{
		store:    store,
		logger:   logger,
		auth:     authenticator,
		sessions: sessions,
		metrics:  collector,
		opts:     opts,
	}
}

// selection reads repeated category/builder query parameters. An absent
// parameter selects every value; a parameter given only empty values selects
// none.
func selection(c *gin.Context) filter.Selection {
	return filter.Selection{
		Categories: querySet(c, "category"),
		Builders:   querySet(c, "builder"),
	}
}

func querySet(c *gin.Context, key string) filter.Set {
	values, ok := c.GetQueryArray(key)
	if !ok {
		return nil
	}
	set := filter.NewSet()
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// filtered runs the filter pass for the current request
func (h *Handler) filtered(c *gin.Context) []models.Record {
	return filter.Apply(h.store.Records(), selection(c))
}

func (h *Handler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, filter.Options(h.store.Records()))
}

func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, aggregate.Build(h.filtered(c), h.opts.PublicCategory))
}

func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, aggregate.Summarize(h.filtered(c), h.opts.PublicCategory))
}

func (h *Handler) GetMonthlySchedule(c *gin.Context) {
	c.JSON(http.StatusOK, aggregate.MonthlySchedule(h.filtered(c)))
}

func (h *Handler) GetQuarterlyVolume(c *gin.Context) {
	c.JSON(http.StatusOK, aggregate.QuarterlyVolume(h.filtered(c)))
}

func (h *Handler) GetCategorySplit(c *gin.Context) {
	c.JSON(http.StatusOK, aggregate.CategorySplit(h.filtered(c)))
}

func (h *Handler) GetBuilderTotals(c *gin.Context) {
	c.JSON(http.StatusOK, aggregate.BuilderTotals(h.filtered(c)))
}

func (h *Handler) GetRecords(c *gin.Context) {
	rows := export.Rows(h.filtered(c))
	c.JSON(http.StatusOK, gin.H{
		"count": len(rows),
		"rows":  rows,
	})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, h.filtered(c)); err != nil {
		h.logger.WithError(err).Error("Failed to build CSV export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	if h.metrics != nil {
		h.metrics.Exported(buf.Len())
	}
	c.Header("Content-Disposition", export.ContentDisposition(h.opts.ExportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"records":   h.store.Len(),
		"source":    h.store.Source(),
		"sheet":     h.store.Sheet(),
		"loaded_at": h.store.LoadedAt(),
	})
}
