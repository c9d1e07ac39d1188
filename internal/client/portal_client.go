// Package client talks to the upstream grievance portal over REST. Every call
// attaches the session's upstream bearer token, maps 401 to ErrUnauthorized and
// any other non-2xx response to a typed *APIError; nothing here panics or
// leaks raw transport errors to callers unwrapped.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minhaalawais/fos-hrdd-software/internal/config"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

// ErrUnauthorized is returned for any upstream 401; callers clear the session
// and send the user back to login.
var ErrUnauthorized = errors.New("upstream rejected token")

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// APIError is a non-2xx upstream response with its optional message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portal returned status %d", e.Status)
	}
	return fmt.Sprintf("portal returned status %d: %s", e.Status, e.Message)
}

type PortalClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPortalClient(cfg *config.Config) *PortalClient {
	return &PortalClient{
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Upstream.Timeout,
		},
	}
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for an upstream bearer token. The portal expects
// OAuth2-style form encoding, not JSON.
func (c *PortalClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if result.AccessToken == "" {
		return nil, &APIError{Status: http.StatusOK, Message: "login response missing access token"}
	}
	return &result, nil
}

// Complaints fetches the full complaint list for the authenticated company.
func (c *PortalClient) Complaints(ctx context.Context, token string) ([]model.Complaint, error) {
	body, err := c.get(ctx, "/io_portal_json", token)
	if err != nil {
		return nil, err
	}

	var response struct {
		Data []model.Complaint `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse complaint list: %w", err)
	}
	return response.Data, nil
}

// ComplaintFiles fetches the attachments for one stage category of a ticket
// (proof, capa, capa1 or capa2).
func (c *PortalClient) ComplaintFiles(ctx context.Context, token, ticket, category string) ([]model.ComplaintFile, error) {
	path := fmt.Sprintf("/get_complaint_files/%s/%s", url.PathEscape(ticket), url.PathEscape(category))
	body, err := c.get(ctx, path, token)
	if err != nil {
		return nil, err
	}

	var response struct {
		Files []model.ComplaintFile `json:"files"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse file list: %w", err)
	}
	return response.Files, nil
}

// Upload is one attachment forwarded with a stage update.
type Upload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SubmitFormInput carries a stage update: the ticket, the authored narrative
// and deadline fields, and any attachments.
type SubmitFormInput struct {
	Ticket  string
	Fields  map[string]string
	Uploads []Upload
}

// SubmitForm forwards a stage update as multipart form data.
func (c *PortalClient) SubmitForm(ctx context.Context, token string, input SubmitFormInput) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("ticket", input.Ticket); err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}
	for name, value := range input.Fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to encode form: %w", err)
		}
	}
	for _, upload := range input.Uploads {
		part, err := writer.CreateFormFile("files", upload.Filename)
		if err != nil {
			return fmt.Errorf("failed to encode upload: %w", err)
		}
		if _, err := part.Write(upload.Content); err != nil {
			return fmt.Errorf("failed to encode upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	_, err := c.do(ctx, http.MethodPost, "/submit_form", token, &buf, writer.FormDataContentType())
	return err
}

// ShareTimelineInput mirrors the share_complaint_timeline payload: a rendered
// timeline snapshot mailed to the recipient.
type ShareTimelineInput struct {
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	ComplaintID string `json:"complaintId"`
	HTML        string `json:"html"`
	CSS         string `json:"css"`
}

func (c *PortalClient) ShareTimeline(ctx context.Context, token string, input ShareTimelineInput) error {
	return c.postJSON(ctx, "/share_complaint_timeline", token, input)
}

func (c *PortalClient) Notifications(ctx context.Context, token string) ([]model.Notification, error) {
	body, err := c.get(ctx, "/get_user_notifications", token)
	if err != nil {
		return nil, err
	}

	var notifications []model.Notification
	if err := json.Unmarshal(body, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notifications: %w", err)
	}
	return notifications, nil
}

func (c *PortalClient) MarkNotificationsRead(ctx context.Context, token string) error {
	return c.postJSON(ctx, "/update_user_notifications", token, struct{}{})
}

func (c *PortalClient) IOUsers(ctx context.Context, token string) ([]model.IOUser, error) {
	body, err := c.get(ctx, "/get_io_users", token)
	if err != nil {
		return nil, err
	}

	var users []model.IOUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse IO users: %w", err)
	}
	return users, nil
}

func (c *PortalClient) RouteViaEmail(ctx context.Context, token string, req model.RouteRequest) error {
	return c.postJSON(ctx, "/route_via_email", token, req)
}

func (c *PortalClient) RouteViaPortal(ctx context.Context, token string, req model.RouteRequest) error {
	return c.postJSON(ctx, "/route_via_portal", token, req)
}

// RouteHistory returns prior routing attempts for a ticket, newest first as
// ordered by the portal.
func (c *PortalClient) RouteHistory(ctx context.Context, token, ticket string) ([]model.RouteHistoryItem, error) {
	path := "/get_complaint_route_history/" + url.PathEscape(ticket)
	body, err := c.get(ctx, path, token)
	if err != nil {
		return nil, err
	}

	var response struct {
		Success bool                     `json:"success"`
		Message string                   `json:"message"`
		History []model.RouteHistoryItem `json:"history"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse route history: %w", err)
	}
	if !response.Success {
		return nil, &APIError{Status: http.StatusNotFound, Message: response.Message}
	}
	return response.History, nil
}

// ToggleComplaint confirms processing of an Unprocessed complaint.
func (c *PortalClient) ToggleComplaint(ctx context.Context, token, ticket string) error {
	return c.postJSON(ctx, "/toggle_complaint", token, map[string]string{"ticket_number": ticket})
}

func (c *PortalClient) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", token, nil, "")
	return err
}

const getRetries = 3

// get retries transient transport failures with a linear backoff; GETs are
// safe to replay, mutating calls are not and go through do directly.
func (c *PortalClient) get(ctx context.Context, path, token string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < getRetries; attempt++ {
		body, err := c.do(ctx, http.MethodGet, path, token, nil, "")
		if err == nil {
			return body, nil
		}
		var apiErr *APIError
		if errors.Is(err, ErrUnauthorized) || errors.As(err, &apiErr) {
			return nil, err
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", getRetries, lastErr)
}

func (c *PortalClient) postJSON(ctx context.Context, path, token string, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, path, token, bytes.NewReader(encoded), "application/json")
	return err
}

func (c *PortalClient) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, errors.New("portal base URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(payload)}
	}

	return payload, nil
}

// The portal reports errors as {"detail": ...} (FastAPI) or {"message": ...}.
func errorMessage(payload []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Message
}
