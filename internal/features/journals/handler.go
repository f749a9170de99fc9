package journals

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mptsix/todaydiary/internal/pkg/response"
)

// maxPictureSize bounds how much of an uploaded journal picture is read into
// the embedded document. Mongo documents cap at 16MB including the rest of
// the user's data.
const maxPictureSize = int64(10 * 1024 * 1024)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Create or edit a journal entry
// @Description Registers the entry for its journalDate; an existing entry for the same date is replaced
// @Tags journals
// @Accept json
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param request body RegisterJournalRequest true "Journal entry"
// @Success 200 {object} response.SuccessResponse{data=JournalResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /journal [post]
func (h *Handler) Register(c *gin.Context) {
	userID := c.GetString("userId")

	var req RegisterJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegisterJournal(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	journal, err := h.service.Register(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err, "Failed to register journal")
		return
	}

	response.Success(c, JournalResponse{RegisteredJournal: *journal})
}

// Edit godoc
// @Summary Edit a journal entry
// @Description Same keyed-upsert path as POST; the latest write for a journalDate wins
// @Tags journals
// @Accept json
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param request body RegisterJournalRequest true "Journal entry"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /journal [put]
func (h *Handler) Edit(c *gin.Context) {
	userID := c.GetString("userId")

	var req RegisterJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegisterJournal(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	if _, err := h.service.Register(c.Request.Context(), userID, &req); err != nil {
		response.FromError(c, err, "Failed to edit journal")
		return
	}

	response.NoContent(c)
}

// Get godoc
// @Summary Get a journal entry by date
// @Tags journals
// @Produce json
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param time path int true "journalDate (epoch millis)"
// @Success 200 {object} response.SuccessResponse{data=Journal}
// @Failure 404 {object} response.ErrorResponse
// @Router /journal/{time} [get]
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userId")

	journalDate, err := strconv.ParseInt(c.Param("time"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid journal date", "INVALID_DATE")
		return
	}

	journal, err := h.service.Get(c.Request.Context(), userID, journalDate)
	if err != nil {
		response.FromError(c, err, "Journal not found")
		return
	}

	response.Success(c, journal)
}

// AttachPicture godoc
// @Summary Attach a photo to a journal entry
// @Description Replaces the image payload of the entry identified by the JOURNAL-DATE header
// @Tags journals
// @Accept multipart/form-data
// @Param X-AUTH-TOKEN header string true "Identity token"
// @Param JOURNAL-DATE header int true "journalDate of the target entry"
// @Param file formData file true "Photo to attach"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /journal/picture [post]
func (h *Handler) AttachPicture(c *gin.Context) {
	userID := c.GetString("userId")

	journalDate, err := strconv.ParseInt(c.GetHeader("JOURNAL-DATE"), 10, 64)
	if err != nil {
		response.BadRequest(c, "JOURNAL-DATE header is required", "INVALID_DATE")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	if header.Size > maxPictureSize {
		response.BadRequest(c, "File too large", "FILE_TOO_LARGE")
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxPictureSize))
	if err != nil {
		response.BadRequest(c, "Failed to read file", "INVALID_FILE")
		return
	}

	if err := h.service.AttachPicture(c.Request.Context(), userID, journalDate, image); err != nil {
		response.FromError(c, err, "Journal not found")
		return
	}

	response.NoContent(c)
}
