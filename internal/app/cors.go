package app

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
)

func corsConfig(origins []string, dev bool) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
	}
	if len(origins) == 0 || dev {
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOriginFunc = func(origin string) bool {
		host := extractOriginHost(origin)
		for _, pattern := range origins {
			if matchOriginPattern(pattern, host) {
				return true
			}
		}
		return false
	}
	return cfg
}

// extractOriginHost returns the "host[:port]" portion of an origin URL.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern reports whether host matches the given wildcard pattern.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:]
		return strings.HasSuffix(host, suffix)
	}
	if strings.HasSuffix(pattern, ":*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(host, prefix)
	}
	return false
}
