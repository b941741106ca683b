package forward_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/queuebook/cqrs/command"
	"github.com/rise-and-shine/queuebook/cqrs/query"
	"github.com/rise-and-shine/queuebook/http/server"
	"github.com/rise-and-shine/queuebook/http/server/forward"
	"github.com/rise-and-shine/queuebook/http/server/middleware"
)

type renameInput struct {
	ID   int64  `params:"id"  validate:"required,gt=0"`
	Name string `json:"name"  validate:"required,max=10"`
}

type listInput struct {
	Name string `query:"name"`
}

func newApp() *server.HTTPServer {
	srv := server.NewHTTPServer(server.Config{BodyLimit: 1 << 20}, []server.Middleware{
		middleware.NewErrorHandlerMW(true),
	})

	rename := command.Func[*renameInput, map[string]any](func(_ context.Context, in *renameInput) (map[string]any, error) {
		return map[string]any{"id": in.ID, "name": in.Name}, nil
	})
	list := query.Func[*listInput, []string](func(_ context.Context, in *listInput) ([]string, error) {
		return []string{in.Name}, nil
	})

	srv.RegisterRouter(func(r fiber.Router) {
		r.Put("/queues/:id", forward.ToCommand(rename, fiber.StatusOK))
		r.Get("/queues", forward.ToQuery(list))
	})
	return srv
}

func do(t *testing.T, srv *server.HTTPServer, req *http.Request) (int, string) {
	t.Helper()
	resp, err := srv.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestToCommand(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		body        string
		contentType string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "decodes path and body",
			path:        "/queues/7",
			body:        `{"name":"Dentist"}`,
			contentType: fiber.MIMEApplicationJSON,
			wantStatus:  http.StatusOK,
			wantBody:    `"name":"Dentist"`,
		},
		{
			name:        "validation failure",
			path:        "/queues/7",
			body:        `{"name":"far too long a name"}`,
			contentType: fiber.MIMEApplicationJSON,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "VALIDATION_FAILED",
		},
		{
			name:        "wrong content type",
			path:        "/queues/7",
			body:        "name=x",
			contentType: fiber.MIMEApplicationForm,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "INVALID_CONTENT_TYPE",
		},
		{
			name:        "broken json",
			path:        "/queues/7",
			body:        `{"name":`,
			contentType: fiber.MIMEApplicationJSON,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "INVALID_JSON_BODY",
		},
	}

	srv := newApp()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tc.path, strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, tc.contentType)

			status, body := do(t, srv, req)
			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestToQuery(t *testing.T) {
	status, body := do(t, newApp(), httptest.NewRequest(http.MethodGet, "/queues?name=A", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["A"]`, body)
}

func TestToCommandBind(t *testing.T) {
	srv := server.NewHTTPServer(server.Config{BodyLimit: 1 << 20}, []server.Middleware{
		middleware.NewErrorHandlerMW(true),
	})

	echo := command.Func[*renameInput, string](func(_ context.Context, in *renameInput) (string, error) {
		return in.Name, nil
	})
	fromHeader := func(c *fiber.Ctx, in *renameInput) error {
		in.Name = c.Get("X-Name")
		return nil
	}

	srv.RegisterRouter(func(r fiber.Router) {
		r.Post("/queues/:id", forward.ToCommand(echo, fiber.StatusCreated, fromHeader))
	})

	req := httptest.NewRequest(http.MethodPost, "/queues/3", nil)
	req.Header.Set("X-Name", "Barber")

	status, body := do(t, srv, req)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `"Barber"`, body)
}
