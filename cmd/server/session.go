package main

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/solarquote/internal/logger"
	"github.com/Simplici0/solarquote/internal/quote"
	"github.com/Simplici0/solarquote/internal/session"
)

const sessionCookieName = "solarquote_session"

// cookieSigner signs session ids so a client cannot pick another visitor's id.
type cookieSigner struct {
	secret []byte
	ttl    time.Duration
}

// newCookieSigner uses secret, or a random per-process key when it is empty.
func newCookieSigner(secret string, ttl time.Duration) *cookieSigner {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(err)
		}
	}
	return &cookieSigner{secret: key, ttl: ttl}
}

func (c *cookieSigner) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (c *cookieSigner) verify(value string) (string, bool) {
	id, signature, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(id))
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return "", false
	}
	return id, true
}

func (c *cookieSigner) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    c.sign(id),
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// currentSession returns the visitor's session, starting a new one when the
// cookie is missing, forged or expired. The cookie expiry slides with use.
func currentSession(w http.ResponseWriter, r *http.Request, store *session.Store, cookies *cookieSigner) quote.Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if id, ok := cookies.verify(cookie.Value); ok {
			if sess, ok := store.Get(id); ok {
				cookies.setCookie(w, id)
				return sess
			}
		} else {
			logger.FromContext(r.Context()).Warn("rejected session cookie")
		}
	}

	sess := store.Create()
	cookies.setCookie(w, sess.ID)
	return sess
}
