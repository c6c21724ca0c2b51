package store

import "strings"

// Badger key prefixes. Records are JSON values under a typed prefix;
// index keys map a secondary value back to the primary ID.
const (
	userPrefix           = "user:"
	userByUsernamePrefix = "idx:users:username:" // For login lookups

	bookPrefix = "book:"

	listItemPrefix            = "li:"
	listItemByOwnerPrefix     = "idx:listitems:owner:"     // <ownerID>:<itemID> -> itemID
	listItemByOwnerBookPrefix = "idx:listitems:ownerbook:" // <ownerID>:<bookID> -> itemID, uniqueness guard
)

// normalizeUsername lowercases a username for case-insensitive index lookups.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ownerIndexKey builds the per-owner index key for a list item.
func ownerIndexKey(ownerID, itemID string) []byte {
	return []byte(listItemByOwnerPrefix + ownerID + ":" + itemID)
}

// ownerBookIndexKey builds the uniqueness index key for a (owner, book) pair.
func ownerBookIndexKey(ownerID, bookID string) []byte {
	return []byte(listItemByOwnerBookPrefix + ownerID + ":" + bookID)
}
