package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rxbridge/website-backend/internal/api/dto/common"
	quotedto "github.com/rxbridge/website-backend/internal/api/dto/v1/quote"
	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/logging"
	"github.com/rxbridge/website-backend/internal/mailer"
	"github.com/rxbridge/website-backend/internal/quote"
	"github.com/rxbridge/website-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// QuoteHandler accepts quote form submissions and forwards accepted ones to
// the configured mailbox. Pipeline order: dwell-time check, payload
// validation, spam heuristics, then the single mail attempt.
type QuoteHandler struct {
	validator       *quote.Validator
	mailer          mailer.Mailer
	minDwell        time.Duration
	fallbackContact string
	now             func() time.Time
}

func NewQuoteHandler(m mailer.Mailer, cfg *config.Config) *QuoteHandler {
	return &QuoteHandler{
		validator:       quote.NewValidator(),
		mailer:          m,
		minDwell:        cfg.MinDwellTime,
		fallbackContact: cfg.FallbackContact,
		now:             time.Now,
	}
}

func (h *QuoteHandler) Submit(c *gin.Context) {
	logger := logging.GetGlobalLogger()
	clientIP := utils.GetRealIP(c)

	var req quotedto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationFailure(c, []string{"Request body must be valid JSON"})
		return
	}

	// Implausibly fast submissions are automated. Rejected with the same
	// generic body as spam so bots learn nothing.
	if quote.TooFast(req.SubmissionTime, h.now(), h.minDwell) {
		logger.Warn("Quote submission from %s rejected: submitted too fast", clientIP)
		utils.HandleRejection(c)
		return
	}

	// The current form sends weekly_scripts; cached copies of the old form
	// still send monthly_scripts
	volumeToken := req.WeeklyScripts
	if volumeToken == "" {
		volumeToken = req.MonthlyScripts
	}

	result := h.validator.Validate(quote.RawSubmission{
		PharmacyName:  req.PharmacyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		VolumeToken:   volumeToken,
		VolumeDisplay: req.WeeklyScriptsDisplay,
		Message:       req.Message,
		Honeypot:      req.CompanyWebsite,
	})

	if result.Spam {
		logger.Warn("Quote submission from %s rejected: honeypot filled", clientIP)
		utils.HandleRejection(c)
		return
	}

	if !result.Valid {
		logger.Info("Quote submission from %s failed validation: %v", clientIP, result.Errors)
		utils.HandleValidationFailure(c, result.Errors)
		return
	}

	if indicators := quote.Indicators(result.Submission.Message); len(indicators) > 0 {
		logger.Warn("Quote submission from %s rejected by spam heuristics: %v", clientIP, indicators)
		utils.HandleRejection(c)
		return
	}

	receipt, err := h.mailer.SendQuoteRequest(c.Request.Context(), result.Submission)
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			logger.Error("Quote mail transport is not configured: %v", err)
		}
		utils.HandleAPIError(c, err, http.StatusInternalServerError,
			common.NewTransportErrorResponse(h.fallbackContact))
		return
	}

	logger.Info("Quote request from %q delivered as message %s", result.Submission.PharmacyName, receipt.MessageID)

	utils.HandleSuccess(c, quotedto.QuoteResponse{
		Success:   true,
		Message:   "Thank you! Your quote request has been sent. We'll get back to you shortly.",
		Timestamp: receipt.Timestamp,
	})
}
