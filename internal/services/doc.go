// package services defines interface Catalog for interacting with the remote
// video catalog HTTP API.
//
// The catalog is a YouTube v31 API surface reached through a RapidAPI host.
// The client adds default parameters, a time-boxed response cache, request
// pacing, and maps transport/HTTP failures onto the shared error taxonomy.
package services
