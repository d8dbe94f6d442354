package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient talks to a running server's HTTP API
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type URL struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Idea struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type NewIdea struct {
	Title       string   `json:"title"`
	Purpose     string   `json:"purpose"`
	Description string   `json:"description"`
	IsPaid      bool     `json:"isPaid"`
	InProgress  bool     `json:"inProgress"`
	IsPrivate   bool     `json:"isPrivate"`
	DomainIDs   []string `json:"domainIds"`
	TechIDs     []string `json:"techIds"`
	TopicIDs    []string `json:"topicIds"`
	ImgURLIDs   []string `json:"imgUrlIds"`
	IconURLID   string   `json:"iconUrlId"`
}

type ToggleResult struct {
	Reacted bool `json:"reacted"`
}

type CollaborationRequest struct {
	ID     string `json:"id"`
	IdeaID string `json:"ideaId"`
}

// Register creates an account whose email is derived from baseName
func (c *APIClient) Register(baseName string) (*User, string, error) {
	email := fmt.Sprintf("%s.%d@sim.purposeful.dev", baseName, time.Now().UnixNano()%1000000)

	body := map[string]string{
		"email":     email,
		"password":  "simulatorpassword",
		"firstname": baseName,
		"lastname":  "Simulated",
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/register", body, "", &result); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	return &result.User, result.AccessToken, nil
}

func (c *APIClient) ListTags(kind string) ([]Tag, error) {
	var tags []Tag
	if err := c.do(http.MethodGet, "/"+kind, nil, "", &tags); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return tags, nil
}

func (c *APIClient) CreateURL(token, raw string) (*URL, error) {
	var u URL
	if err := c.do(http.MethodPost, "/url", map[string]string{"url": raw}, token, &u); err != nil {
		return nil, fmt.Errorf("create url: %w", err)
	}
	return &u, nil
}

func (c *APIClient) CreateIdea(token string, idea NewIdea) (*Idea, error) {
	var created Idea
	if err := c.do(http.MethodPost, "/idea/create", idea, token, &created); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return &created, nil
}

func (c *APIClient) React(token, ideaID string) (bool, error) {
	body := map[string]string{"ideaId": ideaID, "reactionType": "HighFive"}

	var result ToggleResult
	if err := c.do(http.MethodPost, "/reaction", body, token, &result); err != nil {
		return false, fmt.Errorf("react: %w", err)
	}
	return result.Reacted, nil
}

func (c *APIClient) RequestCollaboration(token, ideaID, message string) (*CollaborationRequest, error) {
	body := map[string]string{
		"ideaId":            ideaID,
		"message":           message,
		"additionalContact": "discord: simulated",
	}

	var request CollaborationRequest
	if err := c.do(http.MethodPost, "/collaboration/request", body, token, &request); err != nil {
		return nil, fmt.Errorf("request collaboration: %w", err)
	}
	return &request, nil
}

func (c *APIClient) RespondToCollaboration(token, requestID, status string) error {
	body := map[string]string{
		"requestId":         requestID,
		"status":            status,
		"message":           "Thanks for reaching out",
		"additionalContact": "owner@sim.purposeful.dev",
	}
	if err := c.do(http.MethodPost, "/collaboration/response", body, token, nil); err != nil {
		return fmt.Errorf("respond: %w", err)
	}
	return nil
}

// do sends body as JSON and decodes a 200 reply into out when out is non-nil
func (c *APIClient) do(method, path string, body interface{}, token string, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
