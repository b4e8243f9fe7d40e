package handlers

import (
	"context"
	"net/http"
)

// DatabaseStatus - то, что диагностике нужно знать о клиенте базы
type DatabaseStatus interface {
	Connected() bool
	URLConfigured() bool
	DatabaseName() string
	CollectionNames(ctx context.Context) ([]string, error)
}

// SystemHandler - корень и диагностика, без базы не падают
type SystemHandler struct {
	db DatabaseStatus
}

func NewSystemHandler(db DatabaseStatus) *SystemHandler {
	return &SystemHandler{
		db: db,
	}
}

type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Christmas To-Do Backend is running!",
	})
}

// TestDatabase - всегда 200: ошибки стора уходят в поля ответа, а не наружу
func (h *SystemHandler) TestDatabase(w http.ResponseWriter, r *http.Request) {
	resp := DiagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if h.db.Connected() {
		resp.Database = "✅ Available"

		urlStatus := "❌ Not Set"
		if h.db.URLConfigured() {
			urlStatus = "✅ Set"
		}
		resp.DatabaseURL = &urlStatus

		dbName := h.db.DatabaseName()
		resp.DatabaseName = &dbName
		resp.ConnectionStatus = "Connected"

		names, err := h.db.CollectionNames(r.Context())
		if err != nil {
			resp.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		} else {
			if len(names) > 10 {
				names = names[:10]
			}
			resp.Collections = names
			resp.Database = "✅ Connected & Working"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// truncate режет по рунам, чтобы не разрывать многобайтовые символы
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
