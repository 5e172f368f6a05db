package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"spareparts-app/models"
	"spareparts-app/repositories"
	"spareparts-app/utils"
)

type AdminController struct {
	db   *gorm.DB
	repo *repositories.SparePartRepository
}

func NewAdminController(db *gorm.DB, repo *repositories.SparePartRepository) *AdminController {
	return &AdminController{db: db, repo: repo}
}

// Dashboard shows aggregate counts plus the ten most recent users and parts.
func (ad *AdminController) Dashboard(c *gin.Context) {
	var totalUsers, totalParts int64
	if err := ad.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		logrus.WithError(err).Error("failed to count users")
		utils.FlashError(c, "Error loading dashboard")
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err := ad.db.Model(&models.SparePart{}).Count(&totalParts).Error; err != nil {
		logrus.WithError(err).Error("failed to count spare parts")
		utils.FlashError(c, "Error loading dashboard")
		c.Redirect(http.StatusFound, "/")
		return
	}

	var users []models.User
	if err := ad.db.Order("created_at DESC").Limit(10).Find(&users).Error; err != nil {
		logrus.WithError(err).Error("failed to load recent users")
		utils.FlashError(c, "Error loading dashboard")
		c.Redirect(http.StatusFound, "/")
		return
	}

	parts, err := ad.repo.Recent(10)
	if err != nil {
		logrus.WithError(err).Error("failed to load recent parts")
		utils.FlashError(c, "Error loading dashboard")
		c.Redirect(http.StatusFound, "/")
		return
	}

	utils.Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"title":      "Admin Dashboard",
		"totalUsers": totalUsers,
		"totalParts": totalParts,
		"users":      users,
		"parts":      parts,
	})
}

// ManageParts lists every part with owner and category details joined.
func (ad *AdminController) ManageParts(c *gin.Context) {
	parts, err := ad.repo.FindAll()
	if err != nil {
		logrus.WithError(err).Error("failed to load parts")
		utils.FlashError(c, "Error loading parts")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	utils.Render(c, http.StatusOK, "admin/manage-parts.html", gin.H{
		"title": "Manage Parts",
		"parts": parts,
	})
}

// DeleteUser removes a user and cascades to their parts and images.
// Admin-role targets are rejected unconditionally.
func (ad *AdminController) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := ad.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.FlashError(c, "User not found")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	if user.IsAdmin() {
		utils.FlashError(c, "Cannot delete admin users")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	if err := ad.repo.DeleteUserCascade(c.Request.Context(), user.ID); err != nil {
		logrus.WithError(err).Error("failed to delete user")
		utils.FlashError(c, "Error deleting user")
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	utils.FlashSuccess(c, "User deleted successfully")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}
