package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/jobs"
	"github.com/AniruddhGohil/serp-checker/internal/models"
	"github.com/AniruddhGohil/serp-checker/internal/rank"
	"github.com/AniruddhGohil/serp-checker/internal/sessioncache"
	"github.com/AniruddhGohil/serp-checker/internal/validation"
)

// CheckHandler runs rank checks via JSON API.
type CheckHandler struct {
	tracker   *rank.Tracker
	scheduler *jobs.RankChecker
	cfg       *config.Config
}

// NewCheckHandler creates a new API check handler. scheduler may be nil.
func NewCheckHandler(tracker *rank.Tracker, scheduler *jobs.RankChecker, cfg *config.Config) *CheckHandler {
	return &CheckHandler{tracker: tracker, scheduler: scheduler, cfg: cfg}
}

// Check runs the keywords in the request body against the session cache.
func (h *CheckHandler) Check(c fiber.Ctx) error {
	var req models.CheckRequest
	if err := c.Bind().JSON(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	domain := validation.NormalizeDomain(req.Domain)
	if ok, msg := validation.ValidateDomain(domain); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	keywords := validation.CleanKeywords(req.Keywords)
	if err := validation.ValidateKeywords(keywords); err != nil {
		if errors.Is(err, validation.ErrNoKeywords) {
			return jsonError(c, fiber.StatusBadRequest, "No keywords provided.")
		}
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if h.cfg.SerpAPIKey == "" {
		return jsonError(c, fiber.StatusServiceUnavailable, "search API is not configured")
	}

	cache, err := sessioncache.Load(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "session not available")
	}

	report, runErr := h.tracker.Run(c.Context(), domain, keywords, cache)
	if report == nil {
		slog.Error("api check failed", "domain", domain, "error", runErr)
		return jsonError(c, fiber.StatusInternalServerError, "check failed")
	}
	if err := sessioncache.Save(c, cache); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save session")
	}
	if runErr != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "check interrupted")
	}

	return jsonSuccess(c, models.CheckResponse{
		RunID:   report.RunID.String(),
		Domain:  report.Domain,
		Results: report.Results,
	})
}

// Ranks returns the ranks cached in the caller's session.
func (h *CheckHandler) Ranks(c fiber.Ctx) error {
	cache, err := sessioncache.Load(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "session not available")
	}
	return jsonSuccess(c, cache.Snapshot())
}

// Tracking returns the latest scheduled check for a domain from the
// tracking file.
func (h *CheckHandler) Tracking(c fiber.Ctx) error {
	if h.scheduler == nil {
		return jsonError(c, fiber.StatusNotFound, "scheduled tracking is not configured")
	}

	report := h.scheduler.LastReport(c.Params("domain"))
	if report == nil {
		return jsonError(c, fiber.StatusNotFound, "domain is not tracked or has not been checked yet")
	}

	return jsonSuccess(c, models.CheckResponse{
		RunID:   report.RunID.String(),
		Domain:  report.Domain,
		Results: report.Results,
	})
}
