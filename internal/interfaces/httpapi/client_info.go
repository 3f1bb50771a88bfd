package httpapi

import (
	"net"
	"net/http"
	"strings"
)

// clientInfo is the caller metadata recorded in request logs.
type clientInfo struct {
	IP      string
	Country string
}

var (
	clientIPHeaders      = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}
	clientCountryHeaders = []string{"Fly-Client-Country", "CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
)

func resolveClientInfo(r *http.Request) clientInfo {
	info := clientInfo{Country: "ZZ"}
	for _, header := range clientIPHeaders {
		if ip := normalizeIP(r.Header.Get(header)); ip != "" {
			info.IP = ip
			break
		}
	}
	if info.IP == "" {
		info.IP = normalizeIP(r.RemoteAddr)
	}
	for _, header := range clientCountryHeaders {
		if code := normalizeCountry(r.Header.Get(header)); code != "" {
			info.Country = code
			break
		}
	}
	return info
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if first, _, found := strings.Cut(value, ","); found {
		value = strings.TrimSpace(first)
	}
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}

func normalizeCountry(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return ""
	}
	return code
}
