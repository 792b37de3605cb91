package handlers

import (
	"net/http"
	"strings"

	"lifedemo/internal/httpkit"
	"lifedemo/internal/render"
)

// RenderResponse is the success body of POST /render. TempURL is null without a share link.
type RenderResponse struct {
	OK               bool    `json:"ok"`
	ID               string  `json:"id"`
	LocalURL         string  `json:"localUrl"`
	AbsoluteLocalURL string  `json:"absoluteLocalUrl"`
	TempURL          *string `json:"tempUrl"`
}

// PostRender renders a new video. The request body is ignored.
func (h *Handler) PostRender(w http.ResponseWriter, r *http.Request) {
	res, err := h.renderer.Render(r.Context(), render.RenderRequest{BaseURL: baseURL(r)})
	if err != nil {
		// Every render failure is a 500, whatever its code.
		httpkit.WriteError(w, r, h.log, http.StatusInternalServerError, err)
		return
	}

	body := RenderResponse{
		OK:               true,
		ID:               res.ID,
		LocalURL:         res.LocalURL,
		AbsoluteLocalURL: res.AbsoluteLocalURL,
	}
	if res.TempURL != "" {
		body.TempURL = &res.TempURL
	}
	httpkit.WriteJSON(w, http.StatusOK, body)
}

// baseURL is "<scheme>://<host>" as the client addressed us.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host
}
