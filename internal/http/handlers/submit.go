package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samjsmart/gig-int-garden-api/internal/http/response"
	"github.com/samjsmart/gig-int-garden-api/internal/services"
)

// ResponseMode picks between a browser redirect and a JSON body for
// successful submissions. It is fixed at deployment time, not a
// runtime branch on the request.
type ResponseMode string

const (
	ModeRedirect ResponseMode = "redirect"
	ModeJSON     ResponseMode = "json"
)

type SubmitConfig struct {
	Mode       ResponseMode
	SiteOrigin string
}

type SubmitHandler struct {
	intake services.IntakeService
	cfg    SubmitConfig
}

func NewSubmitHandler(intake services.IntakeService, cfg SubmitConfig) *SubmitHandler {
	if cfg.Mode == "" {
		cfg.Mode = ModeRedirect
	}
	if strings.TrimSpace(cfg.SiteOrigin) == "" {
		cfg.SiteOrigin = "https://giginthe.garden"
	}
	return &SubmitHandler{intake: intake, cfg: cfg}
}

func (h *SubmitHandler) Submit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.RespondError(c, http.StatusBadRequest, "Failed to parse form data", err.Error())
		return
	}

	outcome, err := h.intake.Process(c.Request.Context(), c.Request.PostForm)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			response.RespondError(c, http.StatusBadRequest, "Failed to validate form data", vErr.Fields)
			return
		}
		var sErr *services.StepError
		if errors.As(err, &sErr) {
			response.RespondError(c, http.StatusInternalServerError, "Failed to process submission", gin.H{
				"step":  string(sErr.Step),
				"error": sErr.Err.Error(),
			})
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "Failed to process submission", err.Error())
		return
	}

	if h.cfg.Mode == ModeJSON {
		switch outcome.Status {
		case services.StatusNoChange:
			response.RespondOK(c, "no change")
		default:
			response.RespondOK(c, "submission received")
		}
		return
	}

	origin := strings.TrimSpace(c.GetHeader("Origin"))
	if origin == "" {
		origin = h.cfg.SiteOrigin
	}
	origin = strings.TrimRight(origin, "/")

	switch outcome.Status {
	case services.StatusNoChange:
		c.Redirect(http.StatusFound, origin+"/contact/no-change")
	default:
		c.Redirect(http.StatusFound, origin+"/contact/success")
	}
}
