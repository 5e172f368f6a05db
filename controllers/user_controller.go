package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spareparts-app/models"
	"spareparts-app/utils"
)

// UserController serves the authenticated user's own profile. There is no id
// parameter anywhere: a user can never reach another user's profile through
// these routes.
type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) Profile(c *gin.Context) {
	user := utils.CurrentUser(c)

	utils.Render(c, http.StatusOK, "users/profile.html", gin.H{
		"title": "My Profile",
		"user":  user,
	})
}

func (uc *UserController) RenderEditForm(c *gin.Context) {
	user := utils.CurrentUser(c)

	utils.Render(c, http.StatusOK, "users/edit.html", gin.H{
		"title": "Edit Profile",
		"user":  user,
	})
}

// Update changes username and email, and the password only when a non-empty
// new value was supplied. The role is never touched here.
func (uc *UserController) Update(c *gin.Context) {
	user := utils.CurrentUser(c)

	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if !utils.IsValidUsername(username) || !utils.IsValidEmail(email) {
		utils.FlashError(c, "Please provide a valid username and email")
		c.Redirect(http.StatusFound, "/users/profile/edit")
		return
	}

	updates := map[string]interface{}{
		"username": username,
		"email":    email,
	}

	if strings.TrimSpace(password) != "" {
		if !utils.IsValidPassword(password) {
			utils.FlashError(c, "Password must be at least 6 characters")
			c.Redirect(http.StatusFound, "/users/profile/edit")
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password")
			utils.FlashError(c, "Error updating profile")
			c.Redirect(http.StatusFound, "/users/profile/edit")
			return
		}
		updates["password"] = string(hashedPassword)
	}

	if err := uc.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("failed to update profile")
		utils.FlashError(c, "Error updating profile")
		c.Redirect(http.StatusFound, "/users/profile/edit")
		return
	}

	utils.FlashSuccess(c, "Profile updated successfully")
	c.Redirect(http.StatusFound, "/users/profile")
}
