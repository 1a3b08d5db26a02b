package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// HTTPMessengerRepository hands composed messages to the chat delivery
// service. Delivery is at-least-once; duplicates are the service's problem.
type HTTPMessengerRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPMessengerRepository creates a new messenger repository
func NewHTTPMessengerRepository(baseURL, bearerToken string, logger logger.Logger) repository.MessengerRepository {
	return &HTTPMessengerRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type sendMessageRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     struct {
		Text string `json:"text"`
	} `json:"message"`
	ScheduleAt string `json:"scheduleAt"`
	Type       string `json:"type"`
}

// SendPayload sends a payload to the delivery service and returns its task ID
func (r *HTTPMessengerRepository) SendPayload(ctx context.Context, payload *entity.Payload) (string, error) {
	var msg sendMessageRequest
	msg.PhoneNumber = payload.Phone
	msg.Message.Text = payload.Text
	msg.ScheduleAt = payload.ScheduleAt.UTC().Format(time.RFC3339)
	msg.Type = "text"

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications/send-message", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("messenger service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.Success {
		return "", fmt.Errorf("messenger rejected message: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Notification handed to delivery service",
		"taskId", response.Data.TaskID,
		"phone", payload.Phone)

	return response.Data.TaskID, nil
}
