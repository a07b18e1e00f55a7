package handlers

import (
	"net"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// HandleClientIP handles GET /api/ip and echoes the caller's address.
func HandleClientIP() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ip := e.RealIP()
		if ip == "" {
			host, _, err := net.SplitHostPort(e.Request.RemoteAddr)
			if err != nil {
				host = e.Request.RemoteAddr
			}
			ip = host
		}
		return e.JSON(http.StatusOK, map[string]any{"ip": ip})
	}
}
