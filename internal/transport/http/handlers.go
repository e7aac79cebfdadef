package rest

import (
	"encoding/hex"
	"net/http"
	"sort"
	"strconv"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/pkg/httpx"
	"github.com/Gunvolt24/pricecache/pkg/pricetier"
	"github.com/Gunvolt24/pricecache/pkg/validate"
	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

type aggregateRequest struct {
	ID         string   `json:"id"`
	Candidates []string `json:"candidates"`
}

type pendingResponse struct {
	Key     string `json:"key"`
	Pending bool   `json:"pending"`
}

type classifyResponse struct {
	Price   float64 `json:"price"`
	Display string  `json:"display"`
	Tier    string  `json:"tier"`
	Color   uint32  `json:"color"`
	Visible bool    `json:"visible"`
}

// getPrice — немедленный ответ: 200 с ценой (возможно устаревшей) или 202, если поиск запланирован.
func (h *Handler) getPrice(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty key"})
		return
	}
	maxAge := httpx.ParseMaxAge(c, h.defaultMaxAge, MaxAgeLimit)

	quote, ok := h.service.Quote(c.Request.Context(), key, maxAge)
	if !ok {
		c.JSON(http.StatusAccepted, pendingResponse{Key: key, Pending: true})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// aggregate — цена составного предмета. Без id ключ выводится из набора кандидатов.
func (h *Handler) aggregate(c *gin.Context) {
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := validate.ValidateAggregate(req.ID, req.Candidates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := req.ID
	if id == "" {
		id = CompositeID(req.Candidates)
	}
	maxAge := httpx.ParseMaxAge(c, h.defaultMaxAge, MaxAgeLimit)

	quote := h.service.QuoteComposite(c.Request.Context(), domain.CompositeKey(id), req.Candidates, maxAge)
	c.JSON(http.StatusOK, quote)
}

// classify — результат классификатора для произвольной цены.
func (h *Handler) classify(c *gin.Context) {
	price, err := strconv.ParseFloat(c.Param("price"), 64)
	if err == nil {
		err = validate.CheckPrice(price)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	display, tier := pricetier.Classify(price)
	c.JSON(http.StatusOK, classifyResponse{
		Price:   price,
		Display: display,
		Tier:    tier.String(),
		Color:   tier.Color(),
		Visible: pricetier.Visible(price),
	})
}

func (h *Handler) stats(c *gin.Context) {
	entries, pending := h.service.Stats()
	c.JSON(http.StatusOK, gin.H{"entries": entries, "pending": pending})
}

// CompositeID — стабильный id составного предмета: xxhash от отсортированного набора кандидатов.
func CompositeID(candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	d := xxhash.New()
	for _, s := range sorted {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	return hex.EncodeToString(d.Sum(nil))
}
