package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

// googleLogin redirects the browser to the Google consent screen.
func (h *Handlers) googleLogin(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		h.respondError(c, err)
		return
	}
	state := hex.EncodeToString(buf)

	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthURL(state))
}

// googleCallback completes the OAuth exchange, provisions the member on
// first login and hands the session token to the frontend via redirect.
func (h *Handlers) googleCallback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		h.respondError(c, domain.ErrUnauthorized)
		return
	}
	code := c.Query("code")
	if code == "" {
		h.respondError(c, domain.ErrUnauthorized)
		return
	}

	profile, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Error("handlers.googleCallback: oauth exchange failed", slog.Any("error", err))
		h.respondError(c, domain.ErrUnauthorized)
		return
	}

	member, err := h.svc.FindOrCreateMemberByEmail(
		c.Request.Context(),
		profile.Email,
		profile.FirstName,
		profile.LastName,
		profile.ProfilePic,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(member)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/#/auth/callback?token="+token)
}

func (h *Handlers) me(c *gin.Context) {
	actor := currentActor(c)
	if actor == nil {
		h.respondError(c, domain.ErrUnauthorized)
		return
	}

	member, err := h.svc.GetMember(c.Request.Context(), actor.UID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			h.respondError(c, domain.ErrUnauthorized)
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// refresh reissues a token from the member's current store record, so role
// changes take effect without re-login.
func (h *Handlers) refresh(c *gin.Context) {
	actor := currentActor(c)
	if actor == nil {
		h.respondError(c, domain.ErrUnauthorized)
		return
	}

	member, err := h.svc.GetMember(c.Request.Context(), actor.UID)
	if err != nil {
		h.respondError(c, domain.ErrUnauthorized)
		return
	}

	token, err := h.tokens.Issue(member)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token, "user": member})
}
