package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/SscSPs/ledger_service/internal/utils/hashing"
)

const (
	// IdempotencyKeyHeader names the header that deduplicates retried posts.
	IdempotencyKeyHeader = "Idempotency-Key"

	maxIdempotencyKeyLen = 255
	maxEntryBodyBytes    = 1 << 20
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService services.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService services.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, write gin.HandlersChain, journalService services.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal/journal-entries")
	{
		entries.Group("", write...).POST("", h.createEntry)
		entries.GET("/:id", h.getEntry)
	}
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Validates and atomically posts a balanced entry. A retry carrying the same Idempotency-Key and body returns the original entry with 200.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Deduplicates retries of the same request"
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.CreateJournalEntryResponse "Entry posted"
// @Success 200 {object} dto.CreateJournalEntryResponse "Idempotent replay"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Idempotency conflict"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security ApiKeyAuth
// @Router /journal/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEntryBodyBytes+1))
	if err != nil {
		respondError(c, apperrors.NewValidationError("Invalid request format: "+err.Error()), "")
		return
	}
	if len(body) > maxEntryBodyBytes {
		respondError(c, apperrors.NewValidationError("request body is too large"), "")
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		respondBindError(c, err)
		return
	}

	requestHash, err := hashing.RequestHash(body)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Invalid request format: "+err.Error()), "")
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		respondError(c, apperrors.NewValidationError("Idempotency-Key must be at most 255 characters"), "")
		return
	}

	result, err := h.journalService.CreateEntry(c.Request.Context(), req, domain.IdempotencyRequest{
		ScopeToken:  middleware.GetScopeToken(c),
		Key:         key,
		RequestHash: requestHash,
	})
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	logger.Debug("Journal entry response", slog.Int64("entry_id", result.Entry.EntryID), slog.Bool("idempotent", result.Replayed))
	c.JSON(status, dto.CreateJournalEntryResponse{
		Data:       dto.ToJournalEntryResponse(result.Entry),
		Idempotent: result.Replayed,
	})
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry header and its lines in line_index order, annotated with account code and name
// @Tags journals
// @Produce  json
// @Param   id path int true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid entry id"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Router /journal/journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || entryID <= 0 {
		respondError(c, apperrors.NewValidationError("entry id must be a positive integer"), "")
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
