package client

// http_client.go talks to the BlogHub API and unwraps the {code, data, msg} envelope.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bloghub/internal/microservices/http-api/dto"
)

// APIError is a non-2xx envelope.
type APIError struct {
	Status int
	Msg    string
	Fields map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (%d): %v", e.Msg, e.Status, e.Fields)
	}
	return fmt.Sprintf("%s (%d)", e.Msg, e.Status)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

// do sends body as JSON and decodes the envelope's data into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response (%s): %w", resp.Status, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Msg: env.Msg}
		var detail struct {
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(env.Data, &detail) == nil {
			apiErr.Fields = detail.Fields
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *HTTPClient) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Self(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/self", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostFilter is the query of ListPosts. Zero values are omitted.
type PostFilter struct {
	Page     int
	Size     int
	Search   string
	Category string
	Tag      string
	Date     string
}

func (f PostFilter) encode() string {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	for k, v := range map[string]string{"search": f.Search, "category": f.Category, "tag": f.Tag, "date": f.Date} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *HTTPClient) ListPosts(ctx context.Context, filter PostFilter) (*dto.PostListResponse, error) {
	var out dto.PostListResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts"+filter.encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id int64) (*dto.PostResponse, error) {
	var out dto.PostResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) LikePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", id), nil, nil)
}

func (c *HTTPClient) Archive(ctx context.Context) (*dto.ArchiveResponse, error) {
	var out dto.ArchiveResponse
	if err := c.do(ctx, http.MethodGet, "/api/archive", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PostComments(ctx context.Context, postID int64) (*dto.CommentTreeResponse, error) {
	var out dto.CommentTreeResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, req *dto.CreateCommentDTO) (*dto.CommentNode, error) {
	var out dto.CommentNode
	if err := c.do(ctx, http.MethodPost, "/api/comments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, nil)
}
