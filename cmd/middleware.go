package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/logger"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				logger.NotifyError(fmt.Errorf("%s", err), r.Method, r.URL.Path)
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// stripScheme обрезает http:// или https:// у origin/referer.
func stripScheme(v string) string {
	if i := strings.Index(v, "://"); i >= 0 {
		return v[i+3:]
	}
	return v
}

// restrictOrigin отсекает запросы с чужих фронтендов. Запросы без origin и
// referer (платёжные колбэки, серверные вызовы) проходят.
func (app *application) restrictOrigin(next http.Handler) http.Handler {
	allowed := make([]string, 0, len(app.cfg.Server.AllowedOrigins))
	for _, o := range app.cfg.Server.AllowedOrigins {
		allowed = append(allowed, stripScheme(o))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := stripScheme(r.Header.Get("Origin"))
		referer := stripScheme(r.Header.Get("Referer"))

		originOK := origin == ""
		for _, a := range allowed {
			if origin == a {
				originOK = true
				break
			}
		}
		refererOK := referer == ""
		for _, a := range allowed {
			if strings.HasPrefix(referer, a) {
				refererOK = true
				break
			}
		}

		if !originOK || !refererOK {
			source := referer
			if source == "" {
				source = origin
			}
			http.Error(w, fmt.Sprintf("Unauthorized request from third-party: %s", source), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
