package httpserver

import (
	"net/http"
	"slices"
	"strings"
)

const viewCookie = "xiangqi_view"

var viewAliases = map[string]string{
	"web":        "web",
	"desktop":    "web",
	"pc":         "web",
	"mobile":     "mobile",
	"m":          "mobile",
	"phone":      "mobile",
	"web_mobile": "mobile",
}

var mobileAgents = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

// registerStaticRoutes serves the desktop board under /web/, the phone
// layout under /web_mobile/ and sends / to whichever fits the client.
func registerStaticRoutes(mux *http.ServeMux, webDir, mobileDir string) {
	if mobileDir == "" {
		mobileDir = webDir
	}
	mux.Handle("GET /web/", http.StripPrefix("/web/", http.FileServer(http.Dir(webDir))))
	mux.Handle("GET /web_mobile/", http.StripPrefix("/web_mobile/", http.FileServer(http.Dir(mobileDir))))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		target := "/web/"
		if clientView(w, r) == "mobile" {
			target = "/web_mobile/"
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		http.Redirect(w, r, target, http.StatusFound)
	})
}

// clientView picks "web" or "mobile": ?view= wins and is remembered in a
// cookie, then the cookie, then the User-Agent.
func clientView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := viewAliases[strings.ToLower(strings.TrimSpace(r.URL.Query().Get("view")))]; ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookie,
			Value:    v,
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookie); err == nil {
		if v, ok := viewAliases[c.Value]; ok {
			return v
		}
	}
	ua := strings.ToLower(r.UserAgent())
	if slices.ContainsFunc(mobileAgents, func(n string) bool { return strings.Contains(ua, n) }) {
		return "mobile"
	}
	return "web"
}
