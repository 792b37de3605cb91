package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"lifedemo/internal/deps"
	"lifedemo/internal/httpkit"
	"lifedemo/internal/render"
)

// Health performs a health check of the service.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	log := h.log.FromContext(r.Context())

	health := map[string]any{
		"status":  "ok",
		"service": "lifedemo",
		"version": h.version,
	}

	if r.URL.Query().Get("deep") == "true" {
		checks := h.deepHealthCheck()
		health["checks"] = checks

		for name, check := range checks {
			if check["status"] != "ok" {
				health["status"] = "degraded"
				log.Warn("health check degraded", "check", name, "detail", check["error"])
				break
			}
		}
	}

	httpkit.WriteJSON(w, http.StatusOK, health)
}

func (h *Handler) deepHealthCheck() map[string]map[string]any {
	checks := map[string]map[string]any{
		"ffmpeg":  fromStatus(deps.CheckBinaries(deps.RenderRequirements(h.ffmpegPath))[0]),
		"assets":  fromStatus(deps.CheckWritableDir("assets", h.assetsDir)),
		"outputs": fromStatus(deps.CheckWritableDir("outputs", h.outputsDir)),
		"share":   h.checkShare(),
	}

	_, err := os.Stat(filepath.Join(h.assetsDir, render.SampleFile))
	checks["assets"]["sample_cached"] = err == nil
	if h.janitor != nil {
		checks["outputs"]["pending_cleanup"] = h.janitor.Pending()
	}
	return checks
}

func (h *Handler) checkShare() map[string]any {
	if h.share == nil {
		return map[string]any{"status": "ok", "provider": "none"}
	}
	return map[string]any{"status": "ok", "provider": h.share.Provider()}
}

func fromStatus(s deps.Status) map[string]any {
	result := map[string]any{"status": "ok"}
	if s.Path != "" {
		result["path"] = s.Path
	}
	if !s.Available {
		result["status"] = "error"
		result["error"] = s.Detail
	}
	return result
}
