package v1

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"agentic-landing-site/internal/domain"
	"agentic-landing-site/pkg/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

const landingTemplate = "landing.html"

// PageTemplates parses the server rendered pages
func PageTemplates() *template.Template {
	printer := message.NewPrinter(language.English)
	funcs := template.FuncMap{
		// Same grouping and precision as Number.toLocaleString in en-US
		"formatStat": func(v float64) string {
			return printer.Sprint(number.Decimal(v))
		},
		"fieldClass": func(filled bool) string {
			if filled {
				return "form-field is-filled"
			}
			return "form-field"
		},
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type pageData struct {
	Services      []domain.Service
	Showcase      []domain.ShowcaseItem
	Channels      []domain.ContactChannel
	FormID        string
	Fields        domain.FormState
	Filled        map[string]bool
	Submitting    bool
	ResultState   string
	ResultMessage string
	Errors        []string
}

type PageHandler struct {
	contentUC domain.ContentUsecase
	formUC    domain.FormSessionUsecase
}

// NewPageHandler registers the landing page and its script-free contact form post
func NewPageHandler(r gin.IRoutes, contentUC domain.ContentUsecase, formUC domain.FormSessionUsecase, submitGuard ...gin.HandlerFunc) {
	handler := &PageHandler{
		contentUC: contentUC,
		formUC:    formUC,
	}

	r.GET("/", handler.Landing)
	r.POST("/contact", append(submitGuard, handler.SubmitContact)...)
}

// Landing renders the page. A form_id query parameter restores an open form.
func (h *PageHandler) Landing(c *gin.Context) {
	data := h.basePage(c)
	if id := c.Query("form_id"); id != "" {
		if snap, err := h.formUC.Get(c.Request.Context(), id); err == nil {
			h.applySnapshot(&data, snap)
		}
	}
	c.HTML(http.StatusOK, landingTemplate, data)
}

// SubmitContact replays the posted inputs as field changes, then submits.
// Validation errors re-render the form with the visitor's input kept.
func (h *PageHandler) SubmitContact(c *gin.Context) {
	ctx := c.Request.Context()
	data := h.basePage(c)

	id := c.PostForm("form_id")
	if _, err := h.formUC.Get(ctx, id); err != nil {
		snap, err := h.formUC.Open(ctx)
		if err != nil {
			c.Error(apperror.FromFormError(err))
			return
		}
		id = snap.ID
	}

	var snap *domain.FormSnapshot
	for _, field := range domain.FormFields {
		var err error
		snap, err = h.formUC.ChangeField(ctx, id, string(field), c.PostForm(string(field)))
		if err != nil {
			c.Error(apperror.FromFormError(err))
			return
		}
	}

	submitted, err := h.formUC.Submit(ctx, id)
	var vErr *domain.ValidationError
	switch {
	case err == nil:
		snap = submitted
	case errors.As(err, &vErr):
		data.Errors = vErr.Messages
	case errors.Is(err, domain.ErrSubmissionInFlight):
		snap, _ = h.formUC.Get(ctx, id)
	default:
		c.Error(apperror.FromFormError(err))
		return
	}

	h.applySnapshot(&data, snap)
	status := http.StatusOK
	if len(data.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, landingTemplate, data)
}

func (h *PageHandler) basePage(c *gin.Context) pageData {
	ctx := c.Request.Context()
	return pageData{
		Services: h.contentUC.ListServices(ctx),
		Showcase: h.contentUC.ListShowcase(ctx),
		Channels: h.contentUC.ListContactChannels(ctx),
		Filled:   filledByName(domain.FormState{}.Filled()),
	}
}

func (h *PageHandler) applySnapshot(data *pageData, snap *domain.FormSnapshot) {
	if snap == nil {
		return
	}
	data.FormID = snap.ID
	data.Fields = snap.Fields
	data.Filled = filledByName(snap.FilledFields)
	data.Submitting = snap.Status == domain.StatusInFlight
	data.ResultState = string(snap.Result.Outcome)
	// Shown as sent by the backend; html/template escapes it on output
	data.ResultMessage = snap.Result.Message
}

// filledByName re-keys by plain string so templates can index it with literals
func filledByName(filled map[domain.FormField]bool) map[string]bool {
	out := make(map[string]bool, len(filled))
	for field, ok := range filled {
		out[string(field)] = ok
	}
	return out
}
