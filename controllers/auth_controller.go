package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spareparts-app/config"
	"spareparts-app/middleware"
	"spareparts-app/models"
	"spareparts-app/services"
	"spareparts-app/utils"
)

const resetTokenTTL = time.Hour

type AuthController struct {
	db           *gorm.DB
	cfg          *config.Config
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, cfg *config.Config, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		cfg:          cfg,
		emailService: emailService,
	}
}

func (ac *AuthController) RenderRegisterForm(c *gin.Context) {
	utils.Render(c, http.StatusOK, "auth/register.html", gin.H{"title": "Register"})
}

func (ac *AuthController) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if !utils.IsValidUsername(username) || !utils.IsValidEmail(email) || !utils.IsValidPassword(password) {
		utils.FlashError(c, "Please provide a valid username, email and a password of at least 6 characters")
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}

	// Reject duplicates up front; the unique indexes are the backstop
	var existingUser models.User
	if err := ac.db.Where("email = ? OR username = ?", email, username).First(&existingUser).Error; err == nil {
		utils.FlashError(c, "User with this email or username already exists")
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		utils.FlashError(c, "Registration failed. Please try again.")
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("failed to create user")
		utils.FlashError(c, "Registration failed. Please try again.")
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}

	ac.establishSession(c, user.ID)
	utils.FlashSuccess(c, "Registration successful! Welcome to Spare Parts App.")
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) RenderLoginForm(c *gin.Context) {
	utils.Render(c, http.StatusOK, "auth/login.html", gin.H{"title": "Login"})
}

func (ac *AuthController) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var user models.User
	if err := ac.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.FlashError(c, "Invalid email or password")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		utils.FlashError(c, "Invalid email or password")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	ac.establishSession(c, user.ID)
	utils.FlashSuccess(c, "Welcome back!")
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to destroy session")
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

func (ac *AuthController) RenderResetForm(c *gin.Context) {
	utils.Render(c, http.StatusOK, "auth/reset-password/form.html", gin.H{"title": "Reset Password"})
}

func (ac *AuthController) SendResetLink(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	var user models.User
	if err := ac.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.FlashError(c, "No account found with that email address")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	token, err := generateResetToken()
	if err != nil {
		logrus.WithError(err).Error("failed to generate reset token")
		utils.FlashError(c, "Error sending reset email. Please try again.")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	expires := time.Now().Add(resetTokenTTL)
	updates := map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}
	if err := ac.db.Model(&user).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("failed to store reset token")
		utils.FlashError(c, "Error sending reset email. Please try again.")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	resetURL := ac.cfg.BaseURL + "/auth/reset-password/" + token
	if err := ac.emailService.SendPasswordResetEmail(user.Email, user.Username, resetURL); err != nil {
		logrus.WithError(err).Error("failed to send reset email")
		utils.FlashError(c, "Error sending reset email. Please try again.")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	utils.Render(c, http.StatusOK, "auth/reset-password/sent.html", gin.H{"title": "Reset Link Sent"})
}

// RenderNewPasswordForm validates the emailed token before showing the new
// password form. Unknown, expired and consumed tokens all get the same
// message so the cases are indistinguishable to a caller.
func (ac *AuthController) RenderNewPasswordForm(c *gin.Context) {
	token := c.Param("token")

	user, err := ac.findUserByResetToken(token)
	if err != nil {
		utils.FlashError(c, "Password reset token is invalid or has expired")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	utils.Render(c, http.StatusOK, "auth/reset-password/new.html", gin.H{
		"title":  "Set New Password",
		"token":  token,
		"userId": user.ID,
	})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	userID := c.PostForm("userId")
	token := c.PostForm("token")
	password := c.PostForm("password")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil || !user.CanResetPassword(token, time.Now()) {
		utils.FlashError(c, "Password reset token is invalid or has expired")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	if !utils.IsValidPassword(password) {
		utils.FlashError(c, "Password must be at least 6 characters")
		c.Redirect(http.StatusFound, "/auth/reset-password/"+token)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		utils.FlashError(c, "Error resetting password. Please try again.")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	// Consume the token in the same update that applies the new password
	updates := map[string]interface{}{
		"password":               string(hashedPassword),
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}
	if err := ac.db.Model(&user).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("failed to reset password")
		utils.FlashError(c, "Error resetting password. Please try again.")
		c.Redirect(http.StatusFound, "/auth/reset-password")
		return
	}

	go func() {
		if err := ac.emailService.SendPasswordChangedEmail(user.Email, user.Username); err != nil {
			logrus.WithError(err).Error("failed to send password changed email")
		}
	}()

	utils.FlashSuccess(c, "Password has been reset successfully. You can now log in.")
	c.Redirect(http.StatusFound, "/auth/login")
}

func (ac *AuthController) establishSession(c *gin.Context, userID string) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, userID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
	}
}

func (ac *AuthController) findUserByResetToken(token string) (*models.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	err := ac.db.
		Where("reset_password_token = ? AND reset_password_expires > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
