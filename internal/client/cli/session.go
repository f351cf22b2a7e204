package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bidsync/internal/client/payment"
	"github.com/dmitrijs2005/bidsync/internal/common"
)

// Login takes a token pair issued by the backend, stores it sealed in the
// cache and switches to that account.
func (a *App) Login(ctx context.Context) error {

	access, err := GetSecret("Access token", a.out)
	if err != nil {
		a.logger.Warn(ctx, "reading access token failed", "err", err)
		return err
	}
	defer common.WipeByteArray(access)

	refresh, err := GetSecret("Refresh token", a.out)
	if err != nil {
		a.logger.Warn(ctx, "reading refresh token failed", "err", err)
		return err
	}
	defer common.WipeByteArray(refresh)

	accessToken := strings.TrimSpace(string(access))
	if accessToken == "" {
		a.say("Login cancelled.")
		return nil
	}

	sess, err := a.sessions.Restore(ctx, accessToken, strings.TrimSpace(string(refresh)))
	if err != nil {
		a.say("Login unsuccessful: the token is not valid.")
		a.logger.Warn(ctx, "login failed", "err", err)
		return err
	}

	a.setSession(sess)
	a.say("Logged in as", sess.DisplayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	sess, err := a.sessions.Logout(ctx)
	if err != nil {
		a.logger.Warn(ctx, "logout failed", "err", err)
		a.say(a.translator().Text(payment.KeyRequestFailed))
		return err
	}

	a.setSession(sess)
	a.say("Logged out, browsing as guest.")
	return nil
}
