package settings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/settings-admin/settings-admin/internal/cache"
	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/db"
	"github.com/settings-admin/settings-admin/internal/db/controller/setting"
	"github.com/settings-admin/settings-admin/internal/settings"
	"github.com/settings-admin/settings-admin/internal/settings/definition"
	"github.com/settings-admin/settings-admin/internal/web/session"
)

// recordingViews keeps the last rendered template and binding.
type recordingViews struct {
	name    string
	binding fiber.Map
}

func (v *recordingViews) Load() error {
	return nil
}

func (v *recordingViews) Render(w io.Writer, name string, binding any, _ ...string) error {
	v.name = name
	v.binding, _ = binding.(fiber.Map)

	_, err := w.Write([]byte("ok"))

	return err
}

type fixture struct {
	app   *fiber.App
	views *recordingViews
	svc   *settings.Service
	db    *gorm.DB
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "settings.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	reg, err := definition.NewRegistry([]definition.Definition{
		{Key: "section_general", Label: "General Settings", InputType: definition.Delimiter},
		{Key: "site_name", Label: "Site Name", DefaultValue: "My Website", Hint: "Browser title"},
		{
			Key: "max_login_attempts", Label: "Max Login Attempts", DataType: definition.Integer,
			InputType: definition.Number, DefaultValue: 5, EmptyMeansDefault: true,
		},
		{
			Key: "maintenance_mode", Label: "Maintenance Mode", DataType: definition.Boolean,
			InputType: definition.Checkbox, DefaultValue: false,
		},
		{Key: "section_advanced", Label: "Advanced", InputType: definition.Delimiter},
		{Key: "theme", Label: "Theme", InputType: definition.Select, DefaultValue: "light", Options: []definition.Option{
			{Value: "light", Label: "Light"},
			{Value: "dark", Label: "Dark"},
		}},
		{Key: "log_level", Label: "Log Level", InputType: definition.Select, DefaultValue: "warn", OptionsFrom: "log_levels"},
		{Key: "admin_email", Label: "Admin Email", InputType: definition.Email, Rules: []string{"email"}},
	})
	require.NoError(t, err)

	providers := definition.NewProviders()
	providers.Register("log_levels", func(context.Context) ([]definition.Option, error) {
		return []definition.Option{{Value: "warn", Label: "warn"}, {Value: "info", Label: "info"}}, nil
	})

	c := cache.New("memory", cache.NewMemory())
	t.Cleanup(func() { _ = c.Close() })

	svc, err := settings.NewService(reg, conn, c, settings.WithProviders(providers))
	require.NoError(t, err)

	session.Init(nil, config.Session{})

	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})

	s := &Service{}
	s.Init(app, &config.Config{Title: "Settings"}, svc)

	return &fixture{app: app, views: views, svc: svc, db: conn}
}

func (f *fixture) post(t *testing.T, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	return resp
}

// get renders the form, forwarding the cookies of a previous response.
func (f *fixture) get(t *testing.T, prev *http.Response) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, Path, nil)

	if prev != nil {
		for _, c := range prev.Cookies() {
			req.AddCookie(c)
		}
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	return resp
}

func (f *fixture) flash(t *testing.T) string {
	t.Helper()

	flash, ok := f.views.binding["Flash"].(*session.Flash)
	require.True(t, ok, "flash message rendered")

	return flash.Message
}

func fieldByKey(sections []Section, key string) (Field, bool) {
	for _, s := range sections {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}

	return Field{}, false
}

const unchangedForm = "site_name=My+Website&max_login_attempts=5&maintenance_mode=0" +
	"&theme=light&log_level=warn&admin_email="

func TestGet(t *testing.T) {
	f := setup(t)

	_, err := setting.Set(f.db, "site_name", ptr("Stored Name"), nil)
	require.NoError(t, err)

	resp := f.get(t, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, f.views.name)

	sections, ok := f.views.binding["Sections"].([]Section)
	require.True(t, ok)
	require.Len(t, sections, 2)
	assert.Equal(t, "General Settings", sections[0].Label)
	assert.Equal(t, "section-general", sections[0].AnchorID)
	assert.Len(t, sections[0].Fields, 3)
	assert.Len(t, sections[1].Fields, 3)

	site, ok := fieldByKey(sections, "site_name")
	require.True(t, ok)
	assert.Equal(t, "Stored Name", site.Value)
	assert.True(t, site.Resettable)
	assert.Equal(t, "Default value: My Website", site.DefaultNote)
	assert.Equal(t, "Browser title", site.Hint)

	attempts, _ := fieldByKey(sections, "max_login_attempts")
	assert.Equal(t, "5", attempts.Value)
	assert.Equal(t, "Default: 5", attempts.Placeholder)
	assert.Equal(t, "Empty value will use default: 5", attempts.DefaultNote)
	assert.False(t, attempts.Resettable)

	maintenance, _ := fieldByKey(sections, "maintenance_mode")
	assert.Equal(t, "0", maintenance.Value)
	assert.False(t, maintenance.Checked)
	assert.Equal(t, "NO", maintenance.DefaultShow)

	theme, _ := fieldByKey(sections, "theme")
	assert.Len(t, theme.Options, 2)

	level, _ := fieldByKey(sections, "log_level")
	assert.Equal(t, []definition.Option{{Value: "warn", Label: "warn"}, {Value: "info", Label: "info"}}, level.Options)

	email, _ := fieldByKey(sections, "admin_email")
	assert.Empty(t, email.Value)
	assert.Empty(t, email.DefaultNote)
}

func TestPostSavesChanges(t *testing.T) {
	f := setup(t)

	resp := f.post(t, Path, "site_name=Mine&max_login_attempts=12&maintenance_mode=0&maintenance_mode=1"+
		"&theme=light&log_level=info&admin_email=admin%40example.com")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get("Location"))

	f.get(t, resp)
	assert.Equal(t, "5 setting(s) saved", f.flash(t))

	store, err := f.svc.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mine", store.Get("site_name"))
	assert.Equal(t, 12, store.Get("max_login_attempts"))
	assert.Equal(t, true, store.Get("maintenance_mode"))
	assert.Equal(t, "light", store.Get("theme"))
	assert.True(t, store.IsDefault("theme"), "unchanged values are not stored")
	assert.Equal(t, "info", store.Get("log_level"))
	assert.Equal(t, "admin@example.com", store.Get("admin_email"))
}

func TestPostNoChanges(t *testing.T) {
	f := setup(t)

	resp := f.post(t, Path, unchangedForm)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	f.get(t, resp)
	assert.Equal(t, "No changes.", f.flash(t))

	rows, err := setting.GetAll(f.db)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPostReset(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	store, err := f.svc.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "site_name", "Mine"))
	require.NoError(t, store.Set(ctx, "max_login_attempts", 12))
	require.NoError(t, store.Set(ctx, "maintenance_mode", true))

	resp := f.post(t, Path, "settings-reset%5Bsite_name%5D=1&site_name=Mine&max_login_attempts="+
		"&maintenance_mode=0&maintenance_mode=1&theme=light&log_level=warn&admin_email=")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	f.get(t, resp)
	assert.Equal(t, "2 reset to default", f.flash(t))

	store, err = f.svc.Open(ctx)
	require.NoError(t, err)
	assert.True(t, store.IsDefault("site_name"))
	assert.Equal(t, 5, store.Get("max_login_attempts"))
	assert.Equal(t, true, store.Get("maintenance_mode"))
}

func TestPostUncheckedCheckbox(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	store, err := f.svc.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "maintenance_mode", true))

	// no maintenance_mode at all: an unchecked box
	resp := f.post(t, Path, "site_name=My+Website&max_login_attempts=5&theme=light&log_level=warn")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	f.get(t, resp)
	assert.Equal(t, "1 setting(s) saved", f.flash(t))

	store, err = f.svc.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, false, store.Get("maintenance_mode"))
	assert.False(t, store.IsDefault("maintenance_mode"))
}

func TestPostValidationError(t *testing.T) {
	f := setup(t)

	resp := f.post(t, Path, "site_name=Mine&max_login_attempts=many&maintenance_mode=0"+
		"&theme=light&log_level=warn&admin_email=nope")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	failures, ok := f.views.binding["Errors"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "The Max Login Attempts field must be an integer.", failures["max_login_attempts"])
	assert.Equal(t, "The Admin Email field must be a valid email address.", failures["admin_email"])

	sections, ok := f.views.binding["Sections"].([]Section)
	require.True(t, ok)

	attempts, _ := fieldByKey(sections, "max_login_attempts")
	assert.Equal(t, "many", attempts.Value, "submitted values are kept")
	assert.NotEmpty(t, attempts.Error)

	rows, err := setting.GetAll(f.db)
	require.NoError(t, err)
	assert.Empty(t, rows, "nothing is stored")
}

func TestFlush(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// prime the cache, then write behind its back
	_, err := f.svc.Open(ctx)
	require.NoError(t, err)
	_, err = setting.Set(f.db, "site_name", ptr("Direct"), nil)
	require.NoError(t, err)

	resp := f.post(t, FlushPath, "")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get("Location"))

	f.get(t, resp)
	assert.Equal(t, "Cache cleared successfully.", f.flash(t))

	sections, ok := f.views.binding["Sections"].([]Section)
	require.True(t, ok)

	site, _ := fieldByKey(sections, "site_name")
	assert.Equal(t, "Direct", site.Value)
}

func TestGetDatabaseDown(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.svc.FlushCache(context.Background()))

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := f.get(t, nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestResultMessage(t *testing.T) {
	assert.Equal(t, "No changes.", Result{}.Message())
	assert.Equal(t, "2 setting(s) saved", Result{Saved: 2}.Message())
	assert.Equal(t, "1 setting(s) saved, 3 reset to default", Result{Saved: 1, Reset: 3}.Message())
	assert.Equal(t, "1 reset to default, 1 failed", Result{Reset: 1, Failed: 1}.Message())
}

func ptr(s string) *string {
	return &s
}
