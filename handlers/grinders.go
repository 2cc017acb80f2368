package handlers

import (
	"net/http"
	"strconv"

	"brew-journal-backend/brew"

	"github.com/gin-gonic/gin"
)

type GrinderHandler struct{}

func NewGrinderHandler() *GrinderHandler {
	return &GrinderHandler{}
}

// GetGrinders lists the supported grinder models, and when a microns value
// is supplied it includes the per-grinder click setting and the qualitative
// grind label.
func (h *GrinderHandler) GetGrinders(c *gin.Context) {
	microns, _ := strconv.Atoi(c.DefaultQuery("microns", "0"))

	grinders := make([]gin.H, 0, len(brew.GrinderIDs()))
	for _, id := range brew.GrinderIDs() {
		entry := gin.H{
			"id":   id,
			"name": brew.GrinderName(id),
		}
		if microns > 0 {
			entry["setting"] = brew.ClickSetting(id, microns)
		}
		grinders = append(grinders, entry)
	}

	response := gin.H{"grinders": grinders, "labels": brew.GrindLabels()}
	if microns > 0 {
		response["grind_label"] = brew.GrindLabel(microns)
	}

	c.JSON(http.StatusOK, response)
}
