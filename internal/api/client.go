package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/LerianStudio/lib-commons/commons/log"
	libErr "github.com/LerianStudio/lib-device-license-go/error"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/model"
)

// Client calls the backend validation endpoint on behalf of one installation
type Client struct {
	httpClient *http.Client
	url        string
	logger     log.Logger
}

// New creates a new API client
func New(cfg *config.ClientConfig, httpClient *http.Client, logger log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		url:        cfg.ValidationURL,
		logger:     logger,
	}
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// Validate performs the license validation API call.
// A 200 or 401 reply is a decoded policy answer; anything else is returned as an error.
func (c *Client) Validate(ctx context.Context, licenseKey, deviceFingerprint string) (model.ValidationResult, error) {
	body, err := json.Marshal(model.ValidateRequest{
		LicenseKey:        licenseKey,
		DeviceFingerprint: deviceFingerprint,
	})
	if err != nil {
		return model.ValidationResult{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return model.ValidationResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("License validation request failed - error: %s", err.Error())
		return model.ValidationResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusUnauthorized:
		var decoded model.ValidateResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return model.ValidationResult{}, fmt.Errorf("failed to decode response: %w", err)
		}

		result := decoded.ToResult()
		if resp.StatusCode == http.StatusUnauthorized && result.Valid {
			return model.ValidationResult{}, &libErr.ApiError{StatusCode: resp.StatusCode, Msg: "client error: 401 with valid body"}
		}

		return result, nil
	default:
		return c.handleErrorResponse(resp)
	}
}

// handleErrorResponse processes error responses from the API
func (c *Client) handleErrorResponse(resp *http.Response) (model.ValidationResult, error) {
	var errorResp model.ValidateResponse

	bodyBytes, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(bodyBytes, &errorResp)

	if resp.StatusCode >= 500 && resp.StatusCode < 600 {
		c.logger.Debugf("Server error during license validation - status: %d, message: %s",
			resp.StatusCode, errorResp.Message)
		return model.ValidationResult{}, &libErr.ApiError{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("server error: %d", resp.StatusCode)}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		c.logger.Debugf("Client error during license validation - status: %d, message: %s",
			resp.StatusCode, errorResp.Message)
		return model.ValidationResult{}, &libErr.ApiError{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("client error: %d", resp.StatusCode)}
	}

	c.logger.Debugf("Unexpected status during license validation - status: %d", resp.StatusCode)

	return model.ValidationResult{}, &libErr.ApiError{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("unexpected error: %d", resp.StatusCode)}
}
