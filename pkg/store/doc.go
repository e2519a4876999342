// Package store persists family documents.
//
// A [Store] holds one document per family name and tracks whether the
// family is published under a public slug. Two backends exist:
//
//   - [FileStore]: JSON files in a data directory
//   - [MongoStore]: the "families" collection of a MongoDB database
//
// [Cached] puts a cache.Cache in front of either. Built-in demo families are
// served by [Samples], restricted to [AllowedSamples].
package store
