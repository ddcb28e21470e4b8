package dataset

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"roguedex/internal/merge"
	"roguedex/internal/progress"
	"roguedex/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *progress.Hub
}

func NewHandler(repo *Repo, hub *progress.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)                      // GET /datasets
	rg.POST("", h.save)                     // POST /datasets
	rg.POST("/merge", h.merge)              // POST /datasets/merge
	rg.GET("/:series", h.get)               // GET /datasets/:series
	rg.GET("/:series/villains", h.villains) // GET /datasets/:series/villains
	rg.GET("/:series/timeline", h.timeline) // GET /datasets/:series/timeline
	rg.DELETE("/:series", h.remove)         // DELETE /datasets/:series
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) save(c *gin.Context) {
	var ds models.SeriesDataset
	if err := c.ShouldBindJSON(&ds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dataset payload"})
		return
	}
	if ds.Series == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "series name required"})
		return
	}

	if err := h.Repo.Save(c.Request.Context(), &ds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	h.broadcast(progress.EventDatasetSaved, ds.Series)
	c.JSON(http.StatusCreated, gin.H{"series": ds.Series})
}

type mergeRequest struct {
	Series []string `json:"series"`
	Save   bool     `json:"save"`
}

// merge loads the named stored datasets, merges them and optionally
// persists the combined result.
func (h *Handler) merge(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid merge request"})
		return
	}

	datasets := make([]*models.SeriesDataset, 0, len(req.Series))
	for _, series := range req.Series {
		ds, err := h.Repo.Get(c.Request.Context(), series)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed", "series": series})
			return
		}
		if ds == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found", "series": series})
			return
		}
		datasets = append(datasets, ds)
	}

	combined, err := merge.Merge(datasets)
	if err != nil {
		if errors.Is(err, merge.ErrNoDatasets) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one series required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "merge failed"})
		return
	}

	if req.Save {
		if err := h.Repo.Save(c.Request.Context(), combined); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
			return
		}
	}
	h.broadcast(progress.EventMergeDone, combined.Series)
	c.JSON(http.StatusOK, combined)
}

func (h *Handler) get(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ds)
}

// villains serves the villain list of one dataset with optional keyword
// and frequency filters, paginated.
func (h *Handler) villains(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	minFreq := parseInt(c.Query("minFrequency"), 0)
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	filtered := make([]models.Villain, 0, len(ds.Villains))
	for _, v := range ds.Villains {
		if v.Frequency < minFreq {
			continue
		}
		if q != "" && !villainMatches(v, q) {
			continue
		}
		filtered = append(filtered, v)
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  filtered[offset:end],
	})
}

func (h *Handler) timeline(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": ds.Series, "timeline": ds.Timeline})
}

func (h *Handler) remove(c *gin.Context) {
	series := c.Param("series")
	if err := h.Repo.Delete(c.Request.Context(), series); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

func (h *Handler) load(c *gin.Context) (*models.SeriesDataset, bool) {
	series := c.Param("series")
	ds, err := h.Repo.Get(c.Request.Context(), series)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return nil, false
	}
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return ds, true
}

func (h *Handler) broadcast(eventType, series string) {
	if h.Hub != nil {
		h.Hub.BroadcastJSON(progress.NewEvent(eventType, series, ""))
	}
}

func villainMatches(v models.Villain, q string) bool {
	if strings.Contains(strings.ToLower(v.Name), q) {
		return true
	}
	for _, a := range v.Aliases {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
