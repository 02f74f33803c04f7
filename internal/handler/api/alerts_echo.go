package api

import (
	"errors"
	"time"

	"DelistRadar/internal/domain/models"
	domrepo "DelistRadar/internal/domain/repository"
	"DelistRadar/internal/repository"
	"DelistRadar/internal/usecase"
	xhttp "DelistRadar/pkg/http"
	xlogger "DelistRadar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AlertsEchoHandler exposes health, test dispatch and archive queries.
type AlertsEchoHandler struct {
	logger    *xlogger.Logger
	pipe      *usecase.Pipeline
	collector *usecase.Collector
	archive   domrepo.AlertArchive
	notifier  domrepo.Notifier
}

func NewAlertsEchoHandler(
	logger *xlogger.Logger,
	pipe *usecase.Pipeline,
	collector *usecase.Collector,
	archive domrepo.AlertArchive,
	notifier domrepo.Notifier,
) *AlertsEchoHandler {
	return &AlertsEchoHandler{
		logger:    logger,
		pipe:      pipe,
		collector: collector,
		archive:   archive,
		notifier:  notifier,
	}
}

func (h *AlertsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/test-notification", h.TestNotification)
	e.GET("/alerts/recent", h.RecentAlerts)
}

func (h *AlertsEchoHandler) Health(c echo.Context) error {
	status := "ok"
	if !h.collector.IsConnected() {
		status = "degraded"
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":           status,
		"stream_connected": h.collector.IsConnected(),
		"notify_targets":   h.notifier.Targets(),
		"tracked_notices":  h.pipe.Tracked(),
	})
}

func (h *AlertsEchoHandler) TestNotification(c echo.Context) error {
	req := &models.TestNotificationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	raw := &models.RawAnnouncement{
		Source:     models.Source(req.Source),
		Identifier: time.Now().UTC().Format("20060102T150405"),
		Title:      req.Title,
		Body:       req.HTMLContent,
		URL:        req.URL,
	}

	parsed, err := h.pipe.TestDispatch(c.Request().Context(), raw)
	if err != nil {
		h.logger.Error("test dispatch error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"tickers": parsed.Tickers,
		"date":    parsed.Date,
		"time":    parsed.Time,
	})
}

func (h *AlertsEchoHandler) RecentAlerts(c echo.Context) error {
	req := &models.RecentAlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	since := time.Now().UTC().Add(-time.Duration(req.Hours) * time.Hour)
	alerts, err := h.archive.Recent(c.Request().Context(), since, req.Limit)
	if err != nil {
		if errors.Is(err, repository.ErrArchiveDisabled) {
			return xhttp.NotFoundResponse(c, map[string]string{
				"error": "alert archive disabled",
			})
		}
		h.logger.Error("archive query error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}
	return xhttp.SuccessResponse(c, alerts)
}
