// Package pagination normalizes offset paging parameters for the search API.
package pagination

// PageDefaultSize is the row limit applied when a request does not set one.
// It matches the default search session row limit.
const PageDefaultSize = 50

// PageMaxSize caps the per-page row limit; search backends reject or
// truncate larger windows.
const PageMaxSize = 500
