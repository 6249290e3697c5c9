package config

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson"
)

// Operating mode of the agent.
const (
	ModeLive = 0
	ModePast = 1
)

// Account kind used for login. Selects which credential artifact is
// authoritative: BotToken for bots, SessionString for user accounts.
const (
	AccountBot  = 0
	AccountUser = 1
)

// Forward is one user-declared forwarding rule: a single source chat and
// an ordered list of destination chats. Offset and End bound the message
// range replayed in past mode.
type Forward struct {
	Name    string `json:"con_name" bson:"con_name"`
	Enabled bool   `json:"use_this" bson:"use_this"`
	Source  Peer   `json:"source" bson:"source"`
	Dest    []Peer `json:"dest" bson:"dest"`
	Offset  int    `json:"offset" bson:"offset"`
	End     int    `json:"end" bson:"end"`
}

// A rule omitted from the document still defaults to enabled, matching
// how documents written by older releases are read back.
func (f *Forward) UnmarshalJSON(data []byte) error {
	type alias Forward
	a := alias{Enabled: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = Forward(a)
	return nil
}

func (f *Forward) UnmarshalBSON(data []byte) error {
	type alias Forward
	a := alias{Enabled: true}
	if err := bson.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = Forward(a)
	return nil
}

// LiveSettings configures live-mode behavior.
type LiveSettings struct {
	SequentialUpdates bool   `json:"sequential_updates" bson:"sequential_updates"`
	DeleteSync        bool   `json:"delete_sync" bson:"delete_sync"`
	DeleteOnEdit      string `json:"delete_on_edit" bson:"delete_on_edit"`
}

// PastSettings configures past-mode replay. Delay is the inter-message
// pause in whole seconds, clamped into [0,100] at the load boundary.
type PastSettings struct {
	Delay int `json:"delay" bson:"delay"`
}

// LoginConfig selects the credential handed to the Telegram client.
type LoginConfig struct {
	APIID         int    `json:"API_ID" bson:"API_ID"`
	APIHash       string `json:"API_HASH" bson:"API_HASH"`
	AccountType   int    `json:"user_type" bson:"user_type"` // AccountBot or AccountUser
	Phone         int64  `json:"phone_no" bson:"phone_no"`
	Username      string `json:"USERNAME" bson:"USERNAME"`
	SessionString string `json:"SESSION_STRING" bson:"SESSION_STRING"`
	BotToken      string `json:"BOT_TOKEN" bson:"BOT_TOKEN"`
}

// BotMessages is the static UI text shown by the bot surface.
type BotMessages struct {
	Start string `json:"start" bson:"start"`
	Help  string `json:"bot_help" bson:"bot_help"`
}

// Config is the root configuration document: the single writable source
// of truth. The routing map and resolved admin list are derived from it
// and never independently persisted.
type Config struct {
	PID               int                       `json:"pid" bson:"pid"`
	Theme             string                    `json:"theme" bson:"theme"`
	Login             LoginConfig               `json:"login" bson:"login"`
	Admins            []Peer                    `json:"admins" bson:"admins"`
	Forwards          []Forward                 `json:"forwards" bson:"forwards"`
	ShowForwardedFrom bool                      `json:"show_forwarded_from" bson:"show_forwarded_from"`
	Mode              int                       `json:"mode" bson:"mode"` // ModeLive or ModePast
	Live              LiveSettings              `json:"live" bson:"live"`
	Past              PastSettings              `json:"past" bson:"past"`
	Plugins           map[string]map[string]any `json:"plugins" bson:"plugins"`
	BotMessages       BotMessages               `json:"bot_messages" bson:"bot_messages"`
}

// Default returns the document created when no backend record exists yet.
func Default() *Config {
	return &Config{
		Theme:  "light",
		Login:  LoginConfig{Phone: 91},
		Admins: []Peer{},
		Live: LiveSettings{
			DeleteOnEdit: ".deleteMe",
		},
		Forwards: []Forward{},
		Plugins:  map[string]map[string]any{},
		BotMessages: BotMessages{
			Start: "telefwd is up and forwarding!",
			Help:  "https://github.com/telefwd/telefwd",
		},
	}
}

// DecodePlugin decodes the opaque settings block of one plugin into a
// caller-typed struct. Plugin blocks are not interpreted by this core.
func (c *Config) DecodePlugin(name string, out any) error {
	raw, ok := c.Plugins[name]
	if !ok {
		return fmt.Errorf("no settings for plugin %q", name)
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		return fmt.Errorf("decode plugin %q: %w", name, err)
	}
	return nil
}
