// package models defines the data model for the boxtube client.
//
// All types are JSON value objects: persisted collections are serialized
// wholesale into the key-value store, and Video is a projection of the remote
// catalog's item shape, referenced by id wherever it is stored.
package models
