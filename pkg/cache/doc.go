// Package cache stores computed layouts, rendered artifacts and fetched
// documents behind one small interface.
//
// Backends:
//
//   - [FileCache]: JSON files under a directory, used by the CLI
//   - [RedisCache]: shared Redis instance, used by the server
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]. Layout and artifact keys are content hashes of
// their inputs, so a cached value never goes stale; document keys are plain
// names and must be deleted when the document changes.
package cache
