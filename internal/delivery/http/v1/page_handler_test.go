package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"agentic-landing-site/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return w, doc
}

func postContact(values url.Values) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var validPost = url.Values{
	"name":    {"Ada"},
	"email":   {"ada@example.com"},
	"subject": {"Hi"},
	"message": {"Test"},
}

func TestLandingPage(t *testing.T) {
	r := newTestRouter(t, acceptAll)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w, doc := render(t, r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, doc.Find(".service-card").Length())
	assert.Equal(t, 3, doc.Find(".showcase-card").Length())
	assert.Equal(t, "Torus", doc.Find(".showcase-card").First().AttrOr("data-shape", ""))
	assert.Contains(t, doc.Find(".showcase-stats dd").Text(), "1,000,000")
	assert.Equal(t, 3, doc.Find(".contact-channel").Length())

	// Idle, empty form
	assert.Equal(t, "Send Message", strings.TrimSpace(doc.Find("#contact-form button").Text()))
	assert.Equal(t, 0, doc.Find(".is-filled").Length())
	assert.Equal(t, 0, doc.Find(".form-result").Length())
}

func TestSubmitContactPage(t *testing.T) {
	t.Run("Should show the success message and clear the inputs", func(t *testing.T) {
		r := newTestRouter(t, acceptAll)
		w, doc := render(t, r, postContact(validPost))

		require.Equal(t, http.StatusOK, w.Code)
		result := doc.Find(".form-result")
		assert.Equal(t, "success", result.AttrOr("data-state", ""))
		assert.Equal(t, "Your message has been sent successfully!", result.Text())
		assert.Equal(t, "", doc.Find(`input[name="name"]`).AttrOr("value", "missing"))
		assert.NotEmpty(t, doc.Find(`input[name="form_id"]`).AttrOr("value", ""))
	})

	t.Run("Should show backend messages verbatim and keep the inputs", func(t *testing.T) {
		r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Use <name@host> format & <b>retry</b>"}`))
		})
		w, doc := render(t, r, postContact(validPost))

		require.Equal(t, http.StatusOK, w.Code)
		result := doc.Find(".form-result")
		assert.Equal(t, "failure", result.AttrOr("data-state", ""))
		assert.Equal(t, "Use <name@host> format & <b>retry</b>", result.Text())
		assert.Contains(t, w.Body.String(), "Use &lt;name@host&gt; format &amp; &lt;b&gt;retry&lt;/b&gt;")
		assert.Equal(t, 0, doc.Find("#contact-form b").Length())
		assert.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))
		assert.Equal(t, "Test", doc.Find(`textarea[name="message"]`).Text())
		assert.Equal(t, 4, doc.Find(".is-filled").Length())
	})

	t.Run("Should send whitespace and long values the browser would accept", func(t *testing.T) {
		var sent domain.ContactPayload
		r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
			_ = json.NewDecoder(req.Body).Decode(&sent)
			acceptAll(w, req)
		})
		long := strings.Repeat("x", 5001)
		w, doc := render(t, r, postContact(url.Values{
			"name":    {"Ada"},
			"email":   {"ada@example.com"},
			"subject": {"  "},
			"message": {long},
		}))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", doc.Find(".form-result").AttrOr("data-state", ""))
		assert.Equal(t, "  ", sent.Subject)
		assert.Equal(t, long, sent.Message)
	})

	t.Run("Should re-render with 422 and errors when fields are missing", func(t *testing.T) {
		calls := 0
		r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
			calls++
			acceptAll(w, req)
		})
		w, doc := render(t, r, postContact(url.Values{"name": {"Ada"}, "email": {"not-an-email"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		errors := doc.Find(".form-errors li")
		assert.Equal(t, 3, errors.Length())
		assert.Contains(t, errors.Text(), "Your Email: Please enter a valid email address")
		assert.Contains(t, errors.Text(), "Subject: Please fill out this field")
		assert.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))
		assert.Equal(t, 0, calls)
	})

	t.Run("Should keep using the posted form", func(t *testing.T) {
		r := newTestRouter(t, acceptAll)
		_, first := render(t, r, postContact(url.Values{"name": {"Ada"}}))
		id := first.Find(`input[name="form_id"]`).AttrOr("value", "")
		require.NotEmpty(t, id)

		req, _ := http.NewRequest(http.MethodGet, "/?form_id="+id, nil)
		_, doc := render(t, r, req)
		assert.Equal(t, id, doc.Find(`input[name="form_id"]`).AttrOr("value", ""))
		assert.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))

		values := url.Values{"form_id": {id}}
		for k, v := range validPost {
			values[k] = v
		}
		_, doc = render(t, r, postContact(values))
		assert.Equal(t, id, doc.Find(`input[name="form_id"]`).AttrOr("value", ""))
		assert.Equal(t, "success", doc.Find(".form-result").AttrOr("data-state", ""))
	})
}
