package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const deliveryTimeout = 3 * time.Second

// Slack posts events to an incoming webhook.
type Slack struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
	done       func() // test hook, called after each delivery attempt
}

func NewSlack(url string, logger *zap.Logger) *Slack {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slack{
		url:        url,
		httpClient: &http.Client{Timeout: deliveryTimeout},
		logger:     logger,
	}
}

func (s *Slack) Notify(e Event) {
	go s.deliver(e)
}

func (s *Slack) deliver(e Event) {
	if s.done != nil {
		defer s.done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := s.post(ctx, fmt.Sprintf("*%s*\n%s", e.Title, e.Body)); err != nil {
		s.logger.Warn("slack notify failed", zap.Error(err))
	}
}

func (s *Slack) post(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}
