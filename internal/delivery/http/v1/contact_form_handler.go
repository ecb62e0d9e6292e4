package v1

import (
	"net/http"

	"agentic-landing-site/internal/delivery/http/response"
	"agentic-landing-site/internal/domain"
	"agentic-landing-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactFormHandler struct {
	formUC domain.FormSessionUsecase
}

// NewContactFormHandler registers the contact form routes (public, no auth required).
// submitGuard runs in front of the submit route only.
func NewContactFormHandler(public *gin.RouterGroup, formUC domain.FormSessionUsecase, submitGuard ...gin.HandlerFunc) {
	handler := &ContactFormHandler{
		formUC: formUC,
	}

	forms := public.Group("/forms")
	forms.POST("", handler.OpenForm)
	forms.GET("/:id", handler.GetForm)
	forms.PATCH("/:id/fields", handler.ChangeField)
	forms.POST("/:id/submit", append(submitGuard, handler.SubmitForm)...)
	forms.DELETE("/:id", handler.CloseForm)
}

// OpenForm godoc
// @Summary      Open Contact Form
// @Description  Creates an empty contact form in the idle state.
// @Tags         contact
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.FormSnapshot}
// @Failure      503  {object}  response.Response
// @Router       /forms [post]
func (h *ContactFormHandler) OpenForm(c *gin.Context) {
	snap, err := h.formUC.Open(c.Request.Context())
	if err != nil {
		c.Error(apperror.FromFormError(err))
		return
	}
	response.Success(c, http.StatusCreated, "Form opened", snap)
}

// GetForm godoc
// @Summary      Get Contact Form
// @Description  Returns fields, submission status and the latest result of a form.
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Form ID"
// @Success      200  {object}  response.Response{data=domain.FormSnapshot}
// @Failure      404  {object}  response.Response
// @Router       /forms/{id} [get]
func (h *ContactFormHandler) GetForm(c *gin.Context) {
	snap, err := h.formUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(apperror.FromFormError(err))
		return
	}
	response.Success(c, http.StatusOK, "Form retrieved", snap)
}

// ChangeField godoc
// @Summary      Change Contact Form Field
// @Description  Sets one field (name, email, subject or message). The value is not validated.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id      path      string                     true  "Form ID"
// @Param        change  body      domain.FieldChangeRequest  true  "Field change"
// @Success      200     {object}  response.Response{data=domain.FormSnapshot}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /forms/{id}/fields [patch]
func (h *ContactFormHandler) ChangeField(c *gin.Context) {
	var req domain.FieldChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	snap, err := h.formUC.ChangeField(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		c.Error(apperror.FromFormError(err))
		return
	}
	response.Success(c, http.StatusOK, "Field updated", snap)
}

// SubmitForm godoc
// @Summary      Submit Contact Form
// @Description  Sends the form to the contact backend. Backend failures are reported in data.result, not as HTTP errors.
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Form ID"
// @Success      200  {object}  response.Response{data=domain.FormSnapshot}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /forms/{id}/submit [post]
func (h *ContactFormHandler) SubmitForm(c *gin.Context) {
	snap, err := h.formUC.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(apperror.FromFormError(err))
		return
	}
	response.Success(c, http.StatusOK, snap.Result.Message, snap)
}

// CloseForm godoc
// @Summary      Close Contact Form
// @Tags         contact
// @Param        id   path  string  true  "Form ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /forms/{id} [delete]
func (h *ContactFormHandler) CloseForm(c *gin.Context) {
	if err := h.formUC.Close(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(apperror.FromFormError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
