package tgclient_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/telefwd/telefwd/config"
	"github.com/telefwd/telefwd/tgclient"
)

func TestSessionConstructorSelection(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.db")

	tests := []struct {
		name    string
		login   config.LoginConfig
		wantErr bool
	}{
		{
			name:    "bot account with token",
			login:   config.LoginConfig{AccountType: config.AccountBot, BotToken: "123:abc"},
			wantErr: false,
		},
		{
			name:    "bot account without token",
			login:   config.LoginConfig{AccountType: config.AccountBot},
			wantErr: true,
		},
		{
			name:    "user account without session string",
			login:   config.LoginConfig{AccountType: config.AccountUser},
			wantErr: true,
		},
		{
			name:    "bot token on a user account is not authoritative",
			login:   config.LoginConfig{AccountType: config.AccountUser, BotToken: "123:abc"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := tgclient.SessionConstructor(tt.login, sessionPath)
			if tt.wantErr {
				if !errors.Is(err, tgclient.ErrNoLogin) {
					t.Fatalf("err = %v, want ErrNoLogin", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if session == nil {
				t.Fatal("expected a session constructor")
			}
		})
	}
}
