package web

import (
	"net/http"

	"github.com/JonMunkholm/tabplot/internal/core"
)

// formatInfo describes one detector outcome for API clients.
type formatInfo struct {
	Name      core.Format `json:"name"`
	Delimiter string      `json:"delimiter"`
	Rule      string      `json:"rule"`
}

var formatDescriptions = map[core.Format]formatInfo{
	core.FormatSpectra:      {Delimiter: ",", Rule: "content contains " + core.MarkerToken},
	core.FormatLegacyHeader: {Delimiter: ";", Rule: "line 14 contains ';' (13 preamble lines)"},
	core.FormatTabSeparated: {Delimiter: "\t", Rule: "first line contains a tab"},
	core.FormatPlainCSV:     {Delimiter: ",", Rule: "default"},
}

// handleFormats lists the supported formats in detection order.
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	formats := core.Formats()
	out := make([]formatInfo, 0, len(formats))
	for _, f := range formats {
		info := formatDescriptions[f]
		info.Name = f
		out = append(out, info)
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"formats": out})
}

// handleHealth reports liveness and parse slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.service.LimiterStatus(),
	})
}
