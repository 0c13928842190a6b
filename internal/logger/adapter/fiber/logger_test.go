package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settings-admin/settings-admin/internal/logger"
	adapter "github.com/settings-admin/settings-admin/internal/logger/adapter/fiber"
)

// accessLine implements the access log json format.
type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Route  string `json:"route"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/checkalive",
		SkipPaths:     []string{"/metrics", "/static/"},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "console disabled",
			targetPath: "/settings",
		},
		{
			name:       "settings page",
			config:     consoleConfig(),
			targetPath: "/settings",
			want: &accessLine{
				Status: 200, URI: "/settings", Route: "/settings", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "query string kept",
			config:     consoleConfig(),
			targetPath: "/settings?tab=email",
			want:       &accessLine{Status: 200, URI: "/settings?tab=email", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown route",
			config:     consoleConfig(),
			targetPath: "/nope//x",
			want: &accessLine{
				Status: 404, URI: "/nope//x", Method: fiber.MethodGet, Host: "example.com",
				Error: "Cannot GET",
			},
		},
		{
			name:       "metrics are skipped",
			config:     consoleConfig(),
			targetPath: "/metrics",
		},
		{
			name:       "static files are skipped",
			config:     consoleConfig(),
			targetPath: "/static/css/settings.css",
		},
		{
			name:       "checkalive is skipped",
			config:     consoleConfig(),
			targetPath: "/checkalive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := serveOnce(t, tt.targetPath, tt.config)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			if tt.want.Route != "" {
				assert.Equal(t, tt.want.Route, got.Route)
			}
			if tt.want.Error != "" {
				assert.Contains(t, got.Error, tt.want.Error)
			}
		})
	}
}

func serveOnce(t *testing.T, targetPath string, cfg adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout

	r, w, _ := os.Pipe()
	os.Stdout = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(cfg))

	app.Get("/settings", func(ctx *fiber.Ctx) error {
		return ctx.SendString("settings")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/metrics", func(ctx *fiber.Ctx) error {
		return ctx.SendString("# metrics")
	})
	app.Get("/static/*", func(ctx *fiber.Ctx) error {
		return ctx.SendString("body {}")
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout

	return strings.TrimSpace(<-outC), err
}
