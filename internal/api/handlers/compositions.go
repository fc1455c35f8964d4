package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/songsmith-api/internal/api/middleware"
	sharemw "github.com/Conceptual-Machines/songsmith-api/internal/middleware"
	"github.com/Conceptual-Machines/songsmith-api/internal/models"
	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CompositionHandler struct {
	svc      *services.CompositionService
	counters *Counters
}

func NewCompositionHandler(svc *services.CompositionService, counters *Counters) *CompositionHandler {
	return &CompositionHandler{svc: svc, counters: counters}
}

// Create generates a song. An empty body uses every default.
func (h *CompositionHandler) Create(c *gin.Context) {
	var req models.CompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)
	res, err := h.svc.Compose(c.Request.Context(), req, userID, "")
	if err != nil {
		respondError(c, err)
		return
	}
	h.counters.AddComposition(res.Composition.NoteCount)

	writeComposition(c, res)
}

// writeComposition sends either the JSON summary or the raw file
func writeComposition(c *gin.Context, res *services.ComposeResult) {
	if c.Query("format") == formatJSON {
		c.JSON(http.StatusCreated, res.Summary(true))
		return
	}

	c.Header(headerCompositionID, res.ID)
	c.Header(headerNoteCount, strconv.Itoa(res.Composition.NoteCount))
	c.Header(headerTruncated, strconv.FormatBool(res.Composition.Truncated))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, res.ID))
	c.Data(http.StatusCreated, contentTypeMIDI, res.Composition.Data)
}

// Get returns the history record for one composition
func (h *CompositionHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// List returns the caller's recent compositions
func (h *CompositionHandler) List(c *gin.Context) {
	limit := defaultHistoryPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer", "field": "limit", "value": raw})
			return
		}
		limit = min(n, maxHistoryPageSize)
	}

	userID, _ := middleware.GetUserID(c)
	if userID == middleware.AnonymousUser {
		userID = ""
	}

	recs, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"compositions": recs, "count": len(recs)})
}

// Download streams a stored file; ShareTokenAuth has already checked the token
func (h *CompositionHandler) Download(c *gin.Context) {
	id, ok := sharemw.GetShareGrant(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Share token required"})
		return
	}

	data, err := h.svc.Fetch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(headerCompositionID, id)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, id))
	c.Data(http.StatusOK, contentTypeMIDI, data)
}
