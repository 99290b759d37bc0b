// package repositories provides the client's persisted stores: auth,
// playlists, search history, and watch history.
//
// Each store exclusively owns one logical collection in memory and mirrors it
// into a string-keyed KV table as a single JSON value after every mutation.
// Storage and parse failures are logged and degrade to an empty collection;
// they never propagate to callers. Collections are partitioned by identity
// scope (the active user id, or unscoped for anonymous) and switching scope
// swaps the whole collection without merging.
package repositories
