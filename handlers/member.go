package handlers

import (
	"net/http"

	"membership/gateway"
	"membership/models"
	"membership/services/invoice"
	"membership/services/member"
	"membership/services/messaging"
	"membership/utils"
	"membership/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MemberHandler serves sign-up, verification and renewal endpoints.
type MemberHandler struct {
	Members   member.MemberService
	Invoices  invoice.InvoiceService
	Messaging messaging.MessagingService
	Logger    *zap.Logger
}

// NewMemberHandler wires the member endpoints.
func NewMemberHandler(members member.MemberService, invoices invoice.InvoiceService, msg messaging.MessagingService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		Members:   members,
		Invoices:  invoices,
		Messaging: msg,
		Logger:    logger,
	}
}

type memberRequest struct {
	FirstName            string         `json:"firstName"`
	LastName             string         `json:"lastName"`
	Email                string         `json:"email"`
	Gender               string         `json:"gender"`
	DateOfBirth          string         `json:"dateOfBirth"`
	PrimaryPhoneNumber   string         `json:"primaryPhoneNumber"`
	SecondaryPhoneNumber string         `json:"secondaryPhoneNumber"`
	ResidentialAddress   models.Address `json:"residentialAddress"`
	PostalAddress        models.Address `json:"postalAddress"`
	MembershipType       string         `json:"membershipType"`
}

func (req *memberRequest) toMember() models.Member {
	m := models.Member{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Gender:               req.Gender,
		DateOfBirth:          req.DateOfBirth,
		PrimaryPhoneNumber:   req.PrimaryPhoneNumber,
		SecondaryPhoneNumber: req.SecondaryPhoneNumber,
		ResidentialAddress:   req.ResidentialAddress,
		PostalAddress:        req.PostalAddress,
		MembershipType:       req.MembershipType,
	}
	validation.NormalizePostalAddress(&m)
	return m
}

// NewMemberHandler handles sign-up: validate, create the member and their
// empty invoice, then queue the verification email.
func (h *MemberHandler) NewMemberHandler(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid input"})
		return
	}

	newMember := req.toMember()
	if validationErrors := validation.IsValidMember(newMember); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrors})
		return
	}

	created, err := h.Members.CreateMember(newMember)
	if err != nil {
		h.Logger.Error("sign-up failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}

	invoiceID, err := h.Invoices.CreateEmptyInvoice(c.Request.Context(), created.Email, created.MembershipType)
	if err != nil {
		h.Logger.Error("sign-up invoice creation failed",
			zap.String("memberId", created.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoiceId": invoiceID,
		"newMember": gin.H{"email": created.Email},
	})

	// Verification email goes through the queue; a failure to enqueue
	// must not turn a completed sign-up into an error response.
	if err := h.Messaging.SendVerificationEmail(created); err != nil {
		h.Logger.Error("failed to queue verification email",
			zap.String("memberId", created.ID), zap.Error(err))
	}
}

// UpdateMemberHandler replaces a member's details.
func (h *MemberHandler) UpdateMemberHandler(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid input"})
		return
	}

	updated := req.toMember()
	if validationErrors := validation.IsValidMember(updated); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrors})
		return
	}

	if err := h.Members.UpdateMember(updated); err != nil {
		h.Logger.Error("member update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"newMember": gin.H{"email": updated.Email}})
}

// VerifyMemberHandler verifies the account behind an emailed hash link.
func (h *MemberHandler) VerifyMemberHandler(c *gin.Context) {
	hash := c.Param("hash")
	if !validation.IsValidVerificationHash(hash) {
		h.Logger.Warn("member verification rejected", zap.String("hash", hash))
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.Members.Verify(hash); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// RenewPageHandler returns the member behind a renewal link along with the
// gateway configuration the payment page needs.
func (h *MemberHandler) RenewPageHandler(c *gin.Context) {
	hash := c.Param("hash")
	if !validation.IsValidVerificationHash(hash) {
		h.Logger.Warn("renewal lookup rejected", zap.String("hash", hash))
		c.Status(http.StatusBadRequest)
		return
	}

	m, err := h.Members.FindByRenewalHash(hash)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	for key, value := range gateway.StripeHeaders() {
		c.Header(key, value)
	}
	for key, value := range gateway.PaypalHeaders() {
		c.Header(key, value)
	}
	c.JSON(http.StatusOK, gin.H{"member": m})
}

// RenewMemberHandler stamps a renewal and opens a fresh invoice for it.
func (h *MemberHandler) RenewMemberHandler(c *gin.Context) {
	var req struct {
		RenewalHash string `json:"renewalHash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid input"})
		return
	}

	renewed, err := h.Members.Renew(req.RenewalHash)
	if err != nil {
		h.Logger.Error("member renewal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}

	invoiceID, err := h.Invoices.CreateEmptyInvoice(c.Request.Context(), renewed.Email, renewed.MembershipType)
	if err != nil {
		h.Logger.Error("renewal invoice creation failed",
			zap.String("memberId", renewed.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": utils.InternalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoiceId": invoiceID,
		"newMember": gin.H{"email": renewed.Email},
	})
}
