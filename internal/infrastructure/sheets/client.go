package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
	"github.com/mumanal/actualizacion-datos/internal/domain/repository"
)

// Actions understood by the Apps Script web app.
const (
	ActionAddUser    = "addUser"
	ActionGetUsers   = "getUsers"
	ActionDeleteUser = "deleteUser"
)

// DefaultRejectMessage is used when the script reports failure without a message.
const DefaultRejectMessage = "La respuesta del servidor no fue exitosa."

// DefaultMaxBodyBytes caps how much of an answer is read. A getUsers answer
// runs to roughly 150 bytes per row.
const DefaultMaxBodyBytes = 32 << 20

var (
	ErrUpstreamStatus      = errors.New("sheets: unexpected status")
	ErrUnparseableResponse = errors.New("sheets: response is not json")
	ErrRejected            = errors.New("sheets: request rejected")
	ErrResponseTooLarge    = errors.New("sheets: response too large")
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the spreadsheet-backed Apps Script endpoint.
type Client struct {
	scriptURL string
	http      *http.Client
	lenient   bool
	maxBody   int64
	logger    *logrus.Logger
}

// NewClient builds a client for scriptURL. When lenient is true a write that
// gets a non-JSON answer (the script's redirect page) counts as accepted.
func NewClient(scriptURL string, timeout time.Duration, lenient bool, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		scriptURL: scriptURL,
		http:      &http.Client{Timeout: timeout},
		lenient:   lenient,
		maxBody:   DefaultMaxBodyBytes,
		logger:    logger,
	}
}

// Add posts a new registration with action=addUser.
func (c *Client) Add(ctx context.Context, r entity.Registration) error {
	form := url.Values{}
	for _, kv := range r.Fields() {
		form.Set(kv[0], kv[1])
	}
	return c.write(ctx, ActionAddUser, form)
}

// Delete removes the row identified by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	form := url.Values{}
	form.Set("id", id)
	return c.write(ctx, ActionDeleteUser, form)
}

// List fetches every registered user. The script must answer with JSON.
func (c *Client) List(ctx context.Context) ([]entity.RegisteredUser, error) {
	env, err := c.post(ctx, ActionGetUsers, url.Values{})
	if err != nil {
		return nil, err
	}
	return decodeUsers(env.Data)
}

func (c *Client) write(ctx context.Context, action string, form url.Values) error {
	_, err := c.post(ctx, action, form)
	if err != nil && c.lenient && errors.Is(err, ErrUnparseableResponse) {
		if c.logger != nil {
			c.logger.WithField("action", action).Debug("non-json answer from sheets treated as success")
		}
		return nil
	}
	return err
}

func (c *Client) post(ctx context.Context, action string, form url.Values) (*envelope, error) {
	form.Set("action", action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets %s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("sheets %s: read body: %w", action, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUpstreamStatus, action, resp.StatusCode)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s answer exceeds %d bytes", ErrResponseTooLarge, action, c.maxBody)
	}

	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnparseableResponse, action, err)
	}
	if !env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = DefaultRejectMessage
		}
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return &env, nil
}

// decodeUsers accepts rows whose values may be strings or numbers, since the
// sheet converts numeric-looking cells such as CI or row ids.
func decodeUsers(data json.RawMessage) ([]entity.RegisteredUser, error) {
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return []entity.RegisteredUser{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: users: %v", ErrUnparseableResponse, err)
	}
	out := make([]entity.RegisteredUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.RegisteredUser{
			ID: stringify(row["id"]),
			Registration: entity.Registration{
				FirstName:        stringify(row["firstName"]),
				PaternalLastName: stringify(row["paternalLastName"]),
				MaternalLastName: stringify(row["maternalLastName"]),
				Email:            stringify(row["email"]),
				CI:               stringify(row["ci"]),
			},
		})
	}
	return out, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

var _ repository.RegistrationRepository = (*Client)(nil)
