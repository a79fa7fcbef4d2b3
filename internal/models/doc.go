// Package models defines domain entities and persistence interfaces for the watchlist application.
//
// Two persistent entities exist:
//   - [Identity] : the single administrator, with a bcrypt password hash and a display name
//   - [Movie] : one catalog entry (title + year)
//
// Field constraints live here so every caller (web forms, CLI seeding, tests) applies the same rules.
// Movie years are validated differently on create (at most [YearLength] characters) and on update
// (exactly [YearLength] characters); see [ValidateNewMovie] and [ValidateMovieEdit].
//
// The [Repository] interface defines the CRUD operations the persistence layer provides.
package models
