package docdex

// LinkResolver discovers followable links in a page body.
type LinkResolver interface {
	// Links finds every href in rawBody, resolves relative references
	// against baseURL, and returns the same-origin absolute URLs in
	// document order with fragments stripped and duplicates removed.
	// Malformed references are silently dropped.
	Links(rawBody string, baseURL string) ([]string, error)
}
