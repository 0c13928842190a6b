// Package session keeps one-shot flash messages in the fiber session so a
// form post can redirect and show its outcome on the next page.
package session

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"

	"github.com/settings-admin/settings-admin/internal/config"
)

const flashKey = "flash"

// Flash kinds, used as css classes by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// Flash is a message shown once after a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Init initializes the session store. A nil storage keeps sessions in memory.
func Init(storage fiber.Storage, cfg config.Session) {
	sessionCfg := session.Config{
		Storage:        storage,
		Expiration:     cfg.ExpiryTime,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	if sessionCfg.Expiration <= 0 {
		sessionCfg.Expiration = 24 * time.Hour //nolint:mnd
	}

	if cfg.CookieName != "" {
		sessionCfg.KeyLookup = "cookie:" + cfg.CookieName
	}

	Store = session.New(sessionCfg)
}

// SetFlash stores f for the next request.
func SetFlash(c *fiber.Ctx, f Flash) error {
	if Store == nil {
		return errors.New("session store is not initialized")
	}

	sess, err := Store.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to get session")
	}

	out, err := json.Marshal(f)
	if err != nil {
		return err //nolint:wrapcheck
	}

	sess.Set(flashKey, string(out))

	return errors.Wrap(sess.Save(), "failed to save session")
}

// PopFlash returns and clears the pending flash message, nil without one.
func PopFlash(c *fiber.Ctx) (*Flash, error) {
	if Store == nil {
		return nil, nil
	}

	sess, err := Store.Get(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	raw, ok := sess.Get(flashKey).(string)
	if !ok {
		return nil, nil
	}

	sess.Delete(flashKey)

	if err = sess.Save(); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	var f Flash
	if err = json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &f, nil
}
