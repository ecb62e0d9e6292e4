package v1

import (
	"net/http"

	"agentic-landing-site/internal/delivery/http/response"
	"agentic-landing-site/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

func NewContentHandler(public *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}

	public.GET("/services", handler.ListServices)
	public.GET("/showcase", handler.ListShowcase)
	public.GET("/contact-channels", handler.ListContactChannels)
}

// ListServices godoc
// @Summary      List Services
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Service}
// @Router       /services [get]
func (h *ContentHandler) ListServices(c *gin.Context) {
	response.Success(c, http.StatusOK, "Services retrieved", h.contentUC.ListServices(c.Request.Context()))
}

// ListShowcase godoc
// @Summary      List Showcase Items
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ShowcaseItem}
// @Router       /showcase [get]
func (h *ContentHandler) ListShowcase(c *gin.Context) {
	response.Success(c, http.StatusOK, "Showcase retrieved", h.contentUC.ListShowcase(c.Request.Context()))
}

// ListContactChannels godoc
// @Summary      List Contact Channels
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ContactChannel}
// @Router       /contact-channels [get]
func (h *ContentHandler) ListContactChannels(c *gin.Context) {
	response.Success(c, http.StatusOK, "Contact channels retrieved", h.contentUC.ListContactChannels(c.Request.Context()))
}
