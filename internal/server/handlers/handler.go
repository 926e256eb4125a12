// Package handlers implements HTTP request handlers for the lexctl console.
//
// The console has one page. Its buttons post to action endpoints that run
// the matching view controller operation and then redirect back to the page,
// which renders the controller's latest state.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/view"
)

// Handler holds the dependencies of the console endpoints.
type Handler struct {
	// controller owns the view state and performs backend calls.
	controller *view.Controller

	// basePath is the configured API base path, shown on the page.
	basePath string

	// backendURL is the proxy upstream, shown on the page.
	backendURL string
}

// NewHandler creates a handler for the given controller.
//
// Parameters:
//   - ctrl: The view controller driven by the action endpoints
//   - basePath: API base path as configured (e.g., "/lexapi")
//   - backendURL: Proxy upstream (e.g., "http://localhost:8000")
func NewHandler(ctrl *view.Controller, basePath, backendURL string) *Handler {
	return &Handler{
		controller: ctrl,
		basePath:   basePath,
		backendURL: backendURL,
	}
}

// Page handles GET / and renders the console page.
func (h *Handler) Page(c echo.Context) error {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	resp.Header().Set(echo.HeaderCacheControl, "no-store")
	resp.WriteHeader(http.StatusOK)
	return view.RenderHTML(resp, view.NewPage(h.controller.State(), h.basePath, h.backendURL))
}

// State handles GET /api/state and returns the controller state as JSON.
//
// Response format:
//
//	{
//	  "busy": false,
//	  "query": "doe",
//	  "health": {"phase": "success", "payload": {"status": "ok"}},
//	  "version": {"phase": "idle"},
//	  "search": {"phase": "failure", "message": "HTTP 500"}
//	}
func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.controller.State())
}

// Healthz handles GET /healthz, the console's own liveness probe.
func (h *Handler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CheckHealth handles POST /actions/health.
func (h *Handler) CheckHealth(c echo.Context) error {
	err := h.controller.CheckHealth(c.Request().Context())
	return h.finish(c, view.OpHealth, err)
}

// CheckVersion handles POST /actions/version.
func (h *Handler) CheckVersion(c echo.Context) error {
	err := h.controller.CheckVersion(c.Request().Context())
	return h.finish(c, view.OpVersion, err)
}

// Search handles POST /actions/search with the form field "q".
//
// A blank query is not sent; the page is shown again unchanged.
func (h *Handler) Search(c echo.Context) error {
	err := h.controller.Search(c.Request().Context(), c.FormValue("q"))
	return h.finish(c, view.OpSearch, err)
}

// finish answers an action request.
//
// Browsers are redirected back to the page (303), which shows the outcome.
// Clients that ask for JSON get the state directly. Operation failures are
// part of the state and never turn into an error response; only a refused
// trigger is reported as 409 to JSON clients.
func (h *Handler) finish(c echo.Context, op view.Operation, err error) error {
	busy := errors.Is(err, view.ErrBusy)
	if busy {
		logger.Info("%s refused: %v", op, err)
	}

	if wantsJSON(c.Request()) {
		status := http.StatusOK
		if busy {
			status = http.StatusConflict
		}
		return c.JSON(status, h.controller.State())
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
