package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizbank/internal/errs"
	"quizbank/internal/middleware"
	"quizbank/internal/models"
	"quizbank/internal/objectstore"
	"quizbank/internal/users/service"
	"quizbank/pkg/logger"
	"quizbank/pkg/response"
)

// Handler bundles the user endpoint handlers.
type Handler struct {
	service  *service.Service
	uploader *objectstore.Uploader
	logger   *logger.Logger
}

// NewHandler creates a new user Handler.
func NewHandler(s *service.Service, uploader *objectstore.Uploader, l *logger.Logger) *Handler {
	return &Handler{service: s, uploader: uploader, logger: l}
}

// CreateUserRequest is the JSON payload of POST /create-user.
type CreateUserRequest struct {
	Firstname       string `json:"firstname" binding:"required"`
	Lastname        string `json:"lastname" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ProfileImageURL string `json:"profile_image_url"`
}

// CreateUser registers a new account.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Firstname, req.Lastname, req.Email, req.Password, req.ProfileImageURL)
	if err != nil {
		h.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("user registration failed")
		response.FromError(c, err)
		return
	}

	response.OK(c, user, "User created succesfully !!")
}

// LoginRequest is the JSON payload of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login verifies credentials and issues an access token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKExtra(c, "Logged in succesfully !!", gin.H{"access_token": token})
}

// GetProfile returns the authenticated user's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user, "Profile data fetched succesfully !!")
}

// EditProfileRequest is the JSON payload of POST /edit-profile. Email is
// bound only so attempts to change it can be rejected.
type EditProfileRequest struct {
	Firstname       *string `json:"firstname"`
	Lastname        *string `json:"lastname"`
	Email           *string `json:"email"`
	Password        *string `json:"password" binding:"omitempty,min=8"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// EditProfile updates the authenticated user's mutable profile fields.
func (h *Handler) EditProfile(c *gin.Context) {
	var req EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if req.Email != nil {
		response.FromError(c, errs.NewUnauthorized("Email can't be updated !!"))
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)
	user, err := h.service.EditProfile(c.Request.Context(), userID, models.UserProfileUpdate{
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Password:        req.Password,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user, "Profile data updated succesfully !!")
}

// UploadImage stores a profile image and returns its public URL.
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Missing 'file' upload", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Unable to read uploaded file", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Unable to read uploaded file", nil)
		return
	}

	url, err := h.uploader.UploadImage(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		h.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("image upload failed")
		response.FromError(c, err)
		return
	}

	response.OK(c, url, "Image uploaded succesfully !!")
}
