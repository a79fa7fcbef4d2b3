// Package repositories implements SQLite persistence for the watchlist entities.
//
// Key Implementations:
//   - [IdentityRepository] : the single administrator row, with an atomic upsert of "the first identity"
//   - [MovieRepository] : the movie catalog
//
// Every mutating call runs inside [WithTx] and has committed by the time it returns, so a redirect that
// immediately re-reads the catalog always observes the change. Missing rows are reported as [shared.ErrNotFound].
package repositories
