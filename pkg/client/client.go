package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/logger"
)

// Navigator moves the user to the login screen after a 401.
type Navigator interface {
	ToLogin()
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

// Client is the typed portfolio API client. Every call made while a token is
// stored carries it as a bearer token; any 401 clears the store and triggers
// the Navigator.
type Client struct {
	base   string
	hc     *http.Client
	tokens TokenStore
	nav    Navigator

	Hero     Doc[models.Hero]
	About    Doc[models.About]
	Skills   Doc[models.Skills]
	Settings Doc[models.Settings]

	Education      Resource[models.Education]
	Experience     Resource[models.Experience]
	Projects       Resource[models.Project]
	Certifications Resource[models.Certification]
	Testimonials   Resource[models.Testimonial]
	Blog           Resource[models.BlogArticle]
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }
func WithTokenStore(s TokenStore) Option    { return func(c *Client) { c.tokens = s } }
func WithNavigator(n Navigator) Option      { return func(c *Client) { c.nav = n } }

// New builds a client for backendURL; "/api" is appended.
func New(backendURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(backendURL, "/") + "/api",
		hc:     &http.Client{Timeout: 30 * time.Second},
		tokens: NewMemoryTokenStore(),
	}
	for _, o := range opts {
		o(c)
	}
	c.Hero = Doc[models.Hero]{c: c, name: "hero"}
	c.About = Doc[models.About]{c: c, name: "about"}
	c.Skills = Doc[models.Skills]{c: c, name: "skills"}
	c.Settings = Doc[models.Settings]{c: c, name: "settings"}
	c.Education = Resource[models.Education]{c: c, public: "/portfolio/education", admin: "/admin/education"}
	c.Experience = Resource[models.Experience]{c: c, public: "/portfolio/experience", admin: "/admin/experience"}
	c.Projects = Resource[models.Project]{c: c, public: "/portfolio/projects", admin: "/admin/projects"}
	c.Certifications = Resource[models.Certification]{c: c, public: "/portfolio/certifications", admin: "/admin/certifications"}
	c.Testimonials = Resource[models.Testimonial]{c: c, public: "/portfolio/testimonials", admin: "/admin/testimonials"}
	c.Blog = Resource[models.BlogArticle]{c: c, public: "/portfolio/blog", admin: "/admin/blog/articles"}
	return c
}

// Tokens exposes the token store the client reads from.
func (c *Client) Tokens() TokenStore { return c.tokens }

// BaseURL is the API root including "/api".
func (c *Client) BaseURL() string { return c.base }

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "could not encode request", Err: err}
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if tok := c.tokens.Get(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "Network error. Please check your connection.", Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.onUnauthorized()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "unexpected response body", Err: err}
	}
	return nil
}

func (c *Client) onUnauthorized() {
	if err := c.tokens.Clear(); err != nil {
		logger.Warnf("clearing token after 401: %v", err)
	}
	if c.nav != nil {
		c.nav.ToLogin()
	}
}

// decodeError reads {"code","message"} bodies and FastAPI style {"detail"}.
func decodeError(status int, data []byte) *Error {
	e := &Error{Kind: kindFor(status), Status: status}
	var body struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil {
		e.Code = body.Code
		e.Message = body.Message
		if e.Message == "" && len(body.Detail) > 0 {
			var s string
			if json.Unmarshal(body.Detail, &s) == nil {
				e.Message = s
			} else {
				e.Message = string(body.Detail)
			}
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// Login stores the returned token on success.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if err := c.tokens.Set(out.AccessToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &out, nil
}

// Logout revokes the token on the server, best effort, then clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	var err error
	if c.tokens.Get() != "" {
		err = c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	}
	if cerr := c.tokens.Clear(); cerr != nil {
		return cerr
	}
	if IsKind(err, KindUnauthorized) {
		return nil
	}
	return err
}

func (c *Client) Me(ctx context.Context) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitContact validates locally before sending; incomplete forms never reach the network.
func (c *Client) SubmitContact(ctx context.Context, req models.ContactRequest) (*models.MessageResponse, error) {
	var miss []string
	for _, f := range []struct{ name, val string }{
		{"name", req.Name}, {"email", req.Email}, {"subject", req.Subject}, {"message", req.Message},
	} {
		if strings.TrimSpace(f.val) == "" {
			miss = append(miss, f.name)
		}
	}
	if len(miss) > 0 {
		return nil, &Error{Kind: KindValidation, Message: "missing required fields: " + strings.Join(miss, ", ")}
	}
	var out models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	if err := c.doJSON(ctx, http.MethodGet, "/admin/contact-messages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile sends r as multipart field "file".
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader, subfolder string) (*models.StoredFile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "could not build upload", Err: err}
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, &Error{Kind: KindValidation, Message: "could not read file", Err: err}
	}
	if subfolder != "" {
		if err := mw.WriteField("subfolder", subfolder); err != nil {
			return nil, &Error{Kind: KindValidation, Message: "could not build upload", Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindValidation, Message: "could not build upload", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/admin/upload", &buf)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out models.StoredFile
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload returns only the public URL of the stored file.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, subfolder string) (string, error) {
	f, err := c.UploadFile(ctx, filename, r, subfolder)
	if err != nil {
		return "", err
	}
	return f.URL, nil
}

func (c *Client) ListFiles(ctx context.Context, subfolder string) ([]models.StoredFile, error) {
	path := "/admin/files"
	if subfolder != "" {
		path += "?subfolder=" + url.QueryEscape(subfolder)
	}
	var out []models.StoredFile
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteFile(ctx context.Context, filename, subfolder string) error {
	path := "/admin/files/" + url.PathEscape(filename)
	if subfolder != "" {
		path += "?subfolder=" + url.QueryEscape(subfolder)
	}
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
