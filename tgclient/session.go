package tgclient

import (
	"errors"

	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/glebarez/sqlite"

	"github.com/telefwd/telefwd/config"
)

// ErrNoLogin means neither credential artifact in LoginConfig matches
// the account kind, so no client can be constructed.
var ErrNoLogin = errors.New("login information not set")

// SessionConstructor picks the session artifact the account kind makes
// authoritative: the persisted session string for user accounts, a
// sqlite-backed session for bot accounts.
func SessionConstructor(login config.LoginConfig, sessionPath string) (sessionMaker.SessionConstructor, error) {
	switch {
	case login.AccountType == config.AccountUser && login.SessionString != "":
		return sessionMaker.TelethonSession(login.SessionString), nil
	case login.AccountType == config.AccountBot && login.BotToken != "":
		return sessionMaker.SqlSession(sqlite.Open(sessionPath)), nil
	default:
		return nil, ErrNoLogin
	}
}
