// Package family defines the family document: people, parent→child
// relationships and document metadata.
//
// Documents arrive in several historical shapes. [Decode] normalizes them
// through an explicit [AliasTable]: for each concept (parent id, child id,
// people list, photo, ...) it tries the configured keys in order and keeps
// the first present, non-empty value. Records that cannot be used are
// skipped and reported as warnings so a single bad row never hides a family.
//
//	doc, warnings, err := family.Decode(data)
//	for _, w := range warnings {
//	    logger.Warn(w)
//	}
//
// Dates are free-form strings. [Year] and [Person.Lifespan] extract years for
// card labels without imposing a storage format.
package family
