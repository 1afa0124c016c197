package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/models"
)

// maxResponseSize caps how much of a store response is read.
const maxResponseSize = 8 << 20

// RESTClient talks to the store REST API.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewRESTClient returns a client for the store at baseURL. timeout bounds
// every request; zero means no client-side bound beyond the context.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every subsequent request.
func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// do sends req and decodes a successful JSON response into out (if not nil).
func (c *RESTClient) do(req *http.Request, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", common.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrServer, err)
	}
	return nil
}

func (c *RESTClient) doJSON(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// List returns every record of the collection visible to the session.
//
// Records are decoded one by one. A date that is not a JSON string is kept
// as its raw text so the record survives for the list controller to flag.
func (c *RESTClient) List(ctx context.Context, collection string) ([]models.Bill, error) {
	var raw []json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(collection), nil, &raw); err != nil {
		return nil, err
	}

	bills := make([]models.Bill, 0, len(raw))
	for i, r := range raw {
		b, err := decodeBill(r)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding record %d: %v", common.ErrServer, i, err)
		}
		bills = append(bills, b)
	}
	return bills, nil
}

func decodeBill(r json.RawMessage) (models.Bill, error) {
	var b models.Bill
	err := json.Unmarshal(r, &b)
	if err == nil {
		return b, nil
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(r, &fields) != nil {
		return models.Bill{}, err
	}
	date, ok := fields["date"]
	if !ok {
		return models.Bill{}, err
	}
	var s string
	if json.Unmarshal(date, &s) == nil {
		// the date was fine, something else is broken
		return models.Bill{}, err
	}

	quoted, qerr := json.Marshal(strings.TrimSpace(string(date)))
	if qerr != nil {
		return models.Bill{}, err
	}
	fields["date"] = quoted
	fixed, ferr := json.Marshal(fields)
	if ferr != nil {
		return models.Bill{}, err
	}

	b = models.Bill{}
	if json.Unmarshal(fixed, &b) != nil {
		return models.Bill{}, err
	}
	return b, nil
}

// Create uploads the attachment together with the bill stub and returns the
// identifiers of the placeholder record.
func (c *RESTClient) Create(ctx context.Context, collection string, in CreateRequest) (*CreateResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("email", in.Email); err != nil {
		return nil, fmt.Errorf("building multipart: %w", err)
	}
	if err := mw.WriteField("status", string(in.Status)); err != nil {
		return nil, fmt.Errorf("building multipart: %w", err)
	}

	contentType := in.Attachment.ContentType
	if contentType == "" {
		contentType = models.ContentTypeFor(in.Attachment.Name)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.Attachment.Name))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("building multipart: %w", err)
	}
	if _, err := part.Write(in.Attachment.Data); err != nil {
		return nil, fmt.Errorf("building multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(collection), &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res CreateResult
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	if res.ID == "" {
		return nil, fmt.Errorf("%w: created record has no id", common.ErrServer)
	}
	return &res, nil
}

// Update replaces the record's metadata and returns the stored version.
func (c *RESTClient) Update(ctx context.Context, collection string, id string, bill models.Bill) (*models.Bill, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: update without id", common.ErrValidation)
	}
	var stored models.Bill
	if err := c.doJSON(ctx, http.MethodPatch, c.endpoint(collection, id), bill, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type,omitempty"`
}

// Login exchanges credentials for a session and starts using its token.
func (c *RESTClient) Login(ctx context.Context, email string, password []byte) (*session.Session, error) {
	var resp struct {
		JWT   string `json:"jwt"`
		Email string `json:"email"`
		Type  string `json:"type"`
	}
	in := credentials{Email: email, Password: string(password)}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "login"), in, &resp); err != nil {
		return nil, err
	}
	if resp.JWT == "" {
		return nil, fmt.Errorf("%w: login response has no token", common.ErrServer)
	}

	c.SetToken(resp.JWT)
	return &session.Session{Type: resp.Type, Email: resp.Email, Token: resp.JWT}, nil
}

// Register creates an account on the store.
func (c *RESTClient) Register(ctx context.Context, email string, password []byte, userType string) error {
	in := credentials{Email: email, Password: string(password), Type: userType}
	return c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "register"), in, nil)
}
