package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"registration/domain"
)

type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client talks to the registration endpoint the same way the deployed
// form does: duplicate checks as a GET with query parameters, submissions
// as a form-encoded POST.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *logrus.Logger
}

func New(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Log:     log,
	}
}

// CheckDuplicate asks whether the phone number is already registered.
// Any transport, status or decode failure degrades to "not a duplicate":
// the check is advisory and must never block a registration attempt.
func (c *Client) CheckDuplicate(ctx context.Context, phone string) *domain.DuplicateCheck {
	endpoint := fmt.Sprintf("%s?action=checkDuplicate&phone=%s", c.BaseURL, url.QueryEscape(phone))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.Log.Warnf("duplicate check skipped: %v", err)
		return &domain.DuplicateCheck{IsDuplicate: false}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warnf("duplicate check failed, proceeding with registration: %v", err)
		return &domain.DuplicateCheck{IsDuplicate: false}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.DuplicateCheck{IsDuplicate: false}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Warnf("duplicate check failed, proceeding with registration: %v", err)
		return &domain.DuplicateCheck{IsDuplicate: false}
	}

	var result domain.DuplicateCheck
	if err := sonic.Unmarshal(body, &result); err != nil {
		c.Log.Warnf("duplicate check returned garbage, proceeding with registration: %v", err)
		return &domain.DuplicateCheck{IsDuplicate: false}
	}

	return &result
}

// Submit posts the registration. Failures come back as a retryable
// result, never an abort: the caller keeps the field values and may
// resubmit manually.
func (c *Client) Submit(ctx context.Context, data *domain.Registration) *SubmissionResult {
	form := url.Values{}
	form.Set("action", "submit")
	form.Set("fullName", data.FullName)
	form.Set("email", data.Email)
	form.Set("phone", data.Phone)
	form.Set("homeAddress", data.HomeAddress)
	form.Set("gender", data.Gender)
	form.Set("dateOfBirth", data.DateOfBirth)
	form.Set("maritalStatus", data.MaritalStatus)
	form.Set("society", data.Society)
	// Legacy field; the backend stamps its own clock at append time
	form.Set("timestamp", time.Now().UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return c.submitFailure(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return c.submitFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.submitFailure(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.submitFailure(err)
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return c.submitFailure(err)
	}

	if !payload.Success {
		message := payload.Error
		if message == "" {
			message = "Failed to submit registration. Please try again."
		}
		return &SubmissionResult{Success: false, Message: message}
	}

	return &SubmissionResult{
		Success: true,
		Message: "Registration submitted successfully!",
	}
}

func (c *Client) submitFailure(err error) *SubmissionResult {
	c.Log.Errorf("error submitting registration: %v", err)
	return &SubmissionResult{
		Success: false,
		Message: "Failed to submit registration. Please try again.",
	}
}
