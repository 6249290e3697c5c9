// Package tgclient constructs the external Telegram client whose only
// role in this subsystem is peer resolution. It selects the credential
// artifact from LoginConfig; authentication lifecycle beyond that stays
// with gotgproto.
package tgclient

import (
	"context"
	"strconv"
	"time"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/telefwd/telefwd/config"
)

const rpcRetries = 5

// New builds a logged-in client from LoginConfig. The caller owns the
// session database path.
func New(ctx context.Context, login config.LoginConfig, sessionPath string) (*gotgproto.Client, error) {
	session, err := SessionConstructor(login, sessionPath)
	if err != nil {
		return nil, err
	}
	clientType := gotgproto.ClientTypeBot(login.BotToken)
	if login.AccountType == config.AccountUser {
		clientType = gotgproto.ClientTypePhone(strconv.FormatInt(login.Phone, 10))
	}
	client, err := gotgproto.NewClient(
		login.APIID,
		login.APIHash,
		clientType,
		&gotgproto.ClientOpts{
			Session:          session,
			Context:          ctx,
			DisableCopyright: true,
			Middlewares:      defaultMiddlewares(ctx, 5*time.Minute, rpcRetries),
			MaxRetries:       rpcRetries,
			ErrorHandler: func(ctx *ext.Context, u *ext.Update, s string) error {
				log.FromContext(ctx).Errorf("unhandled error: %s", s)
				return dispatcher.EndGroups
			},
		},
	)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Infof("logged in as %s", client.Self.FirstName)
	return client, nil
}
