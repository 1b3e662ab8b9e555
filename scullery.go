// Package scullery imports recipes from web pages into a reviewable,
// confirmable catalog. It fetches a page, extracts the embedded recipe
// schema, matches free-text ingredient lines against a canonical
// ingredient catalog, stages the result as a draft for human review,
// and commits confirmed drafts as permanent recipes.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., sqlite/, goquery/, scrape/).
package scullery
