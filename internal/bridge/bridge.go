package bridge

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const upstreamErrorMessage = "An error occurred while processing your request"

// Proxy forwards prediction requests to the prediction API unchanged.
type Proxy struct {
	upstream string
	client   *http.Client
}

func NewProxy(upstream string, timeout time.Duration) *Proxy {
	return &Proxy{
		upstream: strings.TrimRight(upstream, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Proxy) Register(router gin.IRoutes) {
	router.POST("/predict", p.HandlePredict)
}

// HandlePredict relays the upstream body on a 2xx answer. Anything else,
// including upstream 4xx, becomes a 500 with a generic message.
func (p *Proxy) HandlePredict(c *gin.Context) {
	t := time.Now()
	body, err := p.forward(c)
	metrics.Timing("flightdelay.bridge.upstream.latency", time.Since(t), []string{"success:" + fmt.Sprint(err == nil)})
	if err != nil {
		logger.Error("Error calling prediction API", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: upstreamErrorMessage})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (p *Proxy) forward(c *gin.Context) ([]byte, error) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, p.upstream+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("prediction API returned %s: %s", resp.Status, body)
	}
	return body, nil
}
