// Package peers turns the heterogeneous chat identifiers users declare
// in forwarding rules into the signed numeric chat IDs every downstream
// consumer keys on.
package peers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/celestix/gotgproto/ext"
	"github.com/duke-git/lancet/v2/validator"

	"github.com/telefwd/telefwd/config"
)

// Resolver resolves one peer identifier to a chat ID. Implementations
// backed by a network client suspend per call; callers needing liveness
// must bound ctx.
type Resolver interface {
	Resolve(ctx context.Context, peer config.Peer) (int64, error)
}

// TelegramResolver resolves handles through a logged-in client. Numeric
// identifiers pass through without a network round trip.
type TelegramResolver struct {
	ectx *ext.Context
}

func NewTelegramResolver(ectx *ext.Context) *TelegramResolver {
	return &TelegramResolver{ectx: ectx}
}

func (r *TelegramResolver) Resolve(ctx context.Context, peer config.Peer) (int64, error) {
	if id, ok := peer.Numeric(); ok {
		return id, nil
	}
	handle := normalizeHandle(peer.Handle())
	if validator.IsIntStr(handle) {
		return strconv.ParseInt(handle, 10, 64)
	}
	chat, err := r.ectx.ResolveUsername(handle)
	if err != nil {
		return 0, fmt.Errorf("resolve %q: %w", peer.Handle(), err)
	}
	if chat == nil {
		return 0, fmt.Errorf("no chat found for %q", peer.Handle())
	}
	id := chat.GetID()
	if id == 0 {
		return 0, fmt.Errorf("chat ID is zero for %q", peer.Handle())
	}
	return id, nil
}

// normalizeHandle strips the decorations users paste along with a chat
// reference: URL schemes, t.me hosts and the leading @.
func normalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	for _, prefix := range []string{"https://", "http://", "t.me/", "telegram.me/", "telegram.dog/"} {
		handle = strings.TrimPrefix(handle, prefix)
	}
	handle = strings.TrimPrefix(handle, "@")
	return strings.TrimSuffix(handle, "/")
}
