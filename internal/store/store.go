// Package store maps the client's three persisted slots onto a kv.Store.
package store

import "fmt"

const (
	SlotCart     = "rr_cart"
	SlotToken    = "rr_token"
	SlotLanguage = "rr_lang"
)

// SlotKey namespaces slot under a session id.
func SlotKey(sessionID, slot string) string {
	return fmt.Sprintf("%s:%s", sessionID, slot)
}
