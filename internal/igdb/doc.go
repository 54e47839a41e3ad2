// Package igdb talks to the IGDB game catalog (https://api-docs.igdb.com).
//
// IGDB authenticates with Twitch OAuth2 client credentials. The package
// splits the integration into three layers: [TokenSource] owns the
// bearer credential and its refresh, [Client] transports Apicalypse
// queries and classifies failures, and [Catalog] exposes the typed
// search and lookup operations built on top.
package igdb
