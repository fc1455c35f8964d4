package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/songsmith-api/internal/api/middleware"
	"github.com/Conceptual-Machines/songsmith-api/internal/models"
	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/gin-gonic/gin"
)

type InterpretHandler struct {
	interpreter  *services.InterpretService
	compositions *services.CompositionService
	counters     *Counters
}

func NewInterpretHandler(interpreter *services.InterpretService, compositions *services.CompositionService, counters *Counters) *InterpretHandler {
	return &InterpretHandler{interpreter: interpreter, compositions: compositions, counters: counters}
}

// Interpret turns a free-text brief into a composition request.
// With ?compose=true the request is also generated and the prompt is kept in history.
func (h *InterpretHandler) Interpret(c *gin.Context) {
	var req models.InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "prompt"})
		return
	}

	userID, _ := middleware.GetUserID(c)
	resp, err := h.interpreter.Interpret(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.counters.AddInterpretation()

	if c.Query("compose") != "true" {
		c.JSON(http.StatusOK, resp)
		return
	}

	res, err := h.compositions.Compose(c.Request.Context(), resp.Request, userID, req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	h.counters.AddComposition(res.Composition.NoteCount)

	if c.Query("format") != formatJSON {
		writeComposition(c, res)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"interpretation": resp,
		"composition":    res.Summary(true),
	})
}
