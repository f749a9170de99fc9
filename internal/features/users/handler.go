package users

import (
	"github.com/gin-gonic/gin"

	"github.com/mptsix/todaydiary/internal/pkg/cloudinary"
	"github.com/mptsix/todaydiary/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account keyed by userId; the id must be free
// @Tags users
// @Accept json
// @Produce json
// @Param request body UserRegisterRequest true "Registration data"
// @Success 200 {object} response.SuccessResponse{data=UserRegisterResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /user [post]
func (h *Handler) Register(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	registered, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "User ID already exists")
		return
	}

	response.Success(c, registered)
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns an identity token
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=LoginResponse}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	login, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Login failed")
		return
	}

	response.Success(c, login)
}

// ChangePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param request body PasswordChangeRequest true "Current and new password"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /user [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetString("userId")

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidatePasswordChange(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		response.FromError(c, err, "Failed to change password")
		return
	}

	response.NoContent(c)
}

// RemoveAccount godoc
// @Summary Remove the caller's account
// @Tags users
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Success 204
// @Failure 500 {object} response.ErrorResponse
// @Router /user [delete]
func (h *Handler) RemoveAccount(c *gin.Context) {
	userID := c.GetString("userId")

	if err := h.service.RemoveAccount(c.Request.Context(), userID); err != nil {
		response.FromError(c, err, "Failed to remove account")
		return
	}

	response.NoContent(c)
}

// GetSealed godoc
// @Summary Sealed profile summary
// @Description Identity fields, per-category entry counts and the most recent entries
// @Tags users
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Success 200 {object} response.SuccessResponse{data=UserSealed}
// @Router /user/sealed [get]
func (h *Handler) GetSealed(c *gin.Context) {
	userID := c.GetString("userId")

	sealed, err := h.service.GetSealedUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "Failed to build profile summary")
		return
	}

	response.Success(c, sealed)
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param id path string true "Target userId"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /user/follow/{id} [post]
func (h *Handler) Follow(c *gin.Context) {
	userID := c.GetString("userId")
	targetID := c.Param("id")

	if err := h.service.Follow(c.Request.Context(), userID, targetID); err != nil {
		response.FromError(c, err, "User not found")
		return
	}

	response.NoContent(c)
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags users
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param id path string true "Target userId"
// @Success 204
// @Router /user/follow/{id} [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	userID := c.GetString("userId")
	targetID := c.Param("id")

	if err := h.service.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		response.FromError(c, err, "User not found")
		return
	}

	response.NoContent(c)
}

// GetFollowing godoc
// @Summary List followed users
// @Tags users
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Success 200 {object} response.SuccessResponse{data=[]UserFiltered}
// @Router /user/follow [get]
func (h *Handler) GetFollowing(c *gin.Context) {
	userID := c.GetString("userId")

	following, err := h.service.GetFollowingUsers(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "Failed to list followed users")
		return
	}

	response.Success(c, following)
}

// SearchByName godoc
// @Summary Search users by display name
// @Description Every match is annotated with whether the caller follows them
// @Tags users
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param name path string true "Display name"
// @Success 200 {object} response.SuccessResponse{data=[]UserFiltered}
// @Router /user/{name} [get]
func (h *Handler) SearchByName(c *gin.Context) {
	userID := c.GetString("userId")
	targetName := c.Param("name")

	matches, err := h.service.SearchUsersByName(c.Request.Context(), userID, targetName)
	if err != nil {
		response.FromError(c, err, "Search failed")
		return
	}

	response.Success(c, matches)
}

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param file formData file true "Image file"
// @Success 200 {object} response.SuccessResponse{data=ProfilePictureResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /user/picture [post]
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	userID := c.GetString("userId")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	uploaded, err := h.service.UploadProfilePicture(c.Request.Context(), userID, file, header.Filename)
	if err != nil {
		response.FromError(c, err, "Failed to upload profile picture")
		return
	}

	response.Success(c, uploaded)
}
