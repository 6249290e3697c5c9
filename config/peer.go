package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Peer is one user-supplied chat identifier. Users write whatever comes
// naturally: a numeric chat ID, a @username, a phone number or an invite
// link. The document keeps the raw form; peers.Resolver turns it into a
// signed chat ID.
type Peer struct {
	id      int64
	handle  string
	numeric bool
}

func PeerID(id int64) Peer {
	return Peer{id: id, numeric: true}
}

func PeerHandle(handle string) Peer {
	return Peer{handle: handle}
}

// Numeric returns the chat ID and true when the peer was declared as a
// number.
func (p Peer) Numeric() (int64, bool) {
	return p.id, p.numeric
}

func (p Peer) Handle() string {
	return p.handle
}

// Zero reports whether the peer carries no usable identifier: a textual
// peer whose handle is empty after trimming. Rules with a zero source are
// skipped during resolution.
func (p Peer) Zero() bool {
	return !p.numeric && strings.TrimSpace(p.handle) == ""
}

func (p Peer) String() string {
	if p.numeric {
		return fmt.Sprintf("%d", p.id)
	}
	return p.handle
}

// The document format stores a peer as a bare JSON number or string, so
// unmarshaling has to sniff the wire type.

func (p Peer) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return json.Marshal(p.id)
	}
	return json.Marshal(p.handle)
}

func (p *Peer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PeerHandle(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("peer must be a number or a string: %s", data)
	}
	*p = PeerID(n)
	return nil
}

func (p Peer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if p.numeric {
		return bson.MarshalValue(p.id)
	}
	return bson.MarshalValue(p.handle)
}

func (p *Peer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	if s, ok := rv.StringValueOK(); ok {
		*p = PeerHandle(s)
		return nil
	}
	if n, ok := rv.AsInt64OK(); ok {
		*p = PeerID(n)
		return nil
	}
	return fmt.Errorf("peer must be a number or a string, got bson type %s", t)
}
