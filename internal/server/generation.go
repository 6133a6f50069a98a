package server

import (
	"net/http"

	"github.com/freeenergie/parrainage/internal/providers/pitch"
	"github.com/freeenergie/parrainage/internal/providers/video"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type generatePitchRequest struct {
	Tone    string `json:"tone"`
	Channel string `json:"channel"`
}

// GeneratePitch never fails toward the caller: any provider error degrades to
// the fallback pitch.
func (s *Server) GeneratePitch(c *gin.Context) {
	var req generatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sponsorName := ""
	if me, err := s.sponsorSvc.Me(c.Request.Context()); err == nil {
		sponsorName = me.Name
	}

	text, err := s.pitchProvider.GeneratePitch(c.Request.Context(), pitch.Request{
		SponsorName: sponsorName,
		Tone:        req.Tone,
		Channel:     req.Channel,
	})
	outcome := "ok"
	if err != nil || text == "" {
		if err != nil {
			s.log.Warn("pitch generation failed", zap.Error(err))
		}
		text = pitch.FallbackPitch
		outcome = "fallback"
	}
	if s.metrics != nil {
		s.metrics.RecordGeneration(c.Request.Context(), "pitch", outcome)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"pitch": text}})
}

type generateVideoRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateVideo blocks until the remote operation completes or the caller's
// request context is cancelled.
func (s *Server) GenerateVideo(c *gin.Context) {
	var req generateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Prompt == "" {
		AbortWithError(c, newValidationError("prompt", "invalid_prompt", "prompt is required"))
		return
	}

	op, err := video.GenerateAndWait(c.Request.Context(), s.videoProvider, video.Request{
		Prompt: req.Prompt,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordGeneration(c.Request.Context(), "video", "error")
		}
		s.log.Warn("video generation failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"done":  false,
			"error": "La génération vidéo est indisponible pour le moment.",
		}})
		return
	}

	if s.metrics != nil {
		s.metrics.RecordGeneration(c.Request.Context(), "video", "ok")
	}
	c.JSON(http.StatusOK, gin.H{"data": op})
}
