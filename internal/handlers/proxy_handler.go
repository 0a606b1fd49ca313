package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mastoride/internal/config"
	"mastoride/internal/utils"
	"mastoride/pkg/logger"
)

// ProxyHandler forwards dashboard API calls to the upstream backend,
// standing in for the serverless pass-through the frontend deploys
// with. The response is relayed verbatim: status, headers, body.
type ProxyHandler struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func NewProxyHandler(cfg *config.UpstreamConfig, log *logger.Logger) *ProxyHandler {
	return &ProxyHandler{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  log,
	}
}

// Forward handles any method on /proxy/*path.
func (h *ProxyHandler) Forward(c *gin.Context) {
	path := c.Param("path")
	target := h.baseURL + path
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, c.Request.Body)
	if err != nil {
		h.fail(c, err)
		return
	}

	copyProxyHeaders(req.Header, c.Request.Header)
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer resp.Body.Close()

	h.logger.WithFields(map[string]interface{}{
		"method":   c.Request.Method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("Proxied request")

	for key, values := range resp.Header {
		for _, value := range values {
			c.Writer.Header().Add(key, value)
		}
	}
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		h.logger.WithError(err).Warn("Proxy response copy interrupted")
	}
}

func (h *ProxyHandler) fail(c *gin.Context, err error) {
	h.logger.WithError(err).Error("Proxy request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrProxyUpstream})
}

// copyProxyHeaders relays client headers except hop-by-hop ones and
// Host, which must be the upstream's own.
func copyProxyHeaders(dst, src http.Header) {
	for key, values := range src {
		switch http.CanonicalHeaderKey(key) {
		case "Host", "Connection", "Keep-Alive", "Proxy-Connection", "Te", "Trailer", "Transfer-Encoding", "Upgrade", "Content-Length":
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
