// Package feed holds the constants shared by the feed assembler and its callers.
package feed

// PageSize is how many posts a timeline returns. There is no cursor: the
// timeline is always the newest page.
const PageSize = 10
