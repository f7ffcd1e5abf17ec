package handlers

import (
	"net/http"
	"time"

	adminRepo "membership/database/repository/admin"
	"membership/services/member"
	"membership/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler serves the back-office endpoints.
type AdminHandler struct {
	Members member.MemberService
	Admins  adminRepo.AdminRepository
	Logger  *zap.Logger
}

// NewAdminHandler wires the admin endpoints.
func NewAdminHandler(members member.MemberService, admins adminRepo.AdminRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		Members: members,
		Admins:  admins,
		Logger:  logger,
	}
}

// LoginHandler authenticates an admin account and issues a session token.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid input"})
		return
	}

	admin, err := h.Admins.GetByEmail(req.Email)
	if err != nil {
		h.Logger.Info("admin failed log in", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		h.Logger.Info("admin failed log in", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "invalid credentials"})
		return
	}

	token, err := utils.GenerateAdminToken(admin.Email, 12*time.Hour)
	if err != nil {
		h.Logger.Error("failed to issue admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}

	h.Logger.Info("admin logged in", zap.String("email", admin.Email))
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// MembersListHandler lists members for the admin surface.
func (h *AdminHandler) MembersListHandler(c *gin.Context) {
	members, err := h.Members.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, utils.InternalErrorMessage, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
