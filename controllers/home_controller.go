package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"spareparts-app/repositories"
	"spareparts-app/utils"
)

type HomeController struct {
	repo *repositories.SparePartRepository
}

func NewHomeController(repo *repositories.SparePartRepository) *HomeController {
	return &HomeController{repo: repo}
}

// Index shows the latest listings. A database outage degrades to an empty
// page with a notice rather than an error page.
func (hc *HomeController) Index(c *gin.Context) {
	data := gin.H{"title": "AutoParts Pro - Professional Automotive Marketplace"}

	recentParts, err := hc.repo.Recent(6)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch recent parts")
		data["dbError"] = "Unable to load recent parts. Please try again later."
	}
	data["recentParts"] = recentParts

	utils.Render(c, http.StatusOK, "home.html", data)
}
