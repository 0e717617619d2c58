// Package adslibrary scans the public ads library for a page's video ads.
//
// The Client fetches rendered library pages over HTTP and the extractors pull
// structured data out of the embedded JSON blobs: page name, ad archive IDs,
// "Started running on" dates, body text, and call-to-action fields. Page
// references are accepted in several shapes (numeric IDs, library URLs with
// view_all_page_id, profile URLs, facebook.com/<name>, instagram.com/<name>,
// or a bare page name) and resolved to a numeric page ID, falling back to a
// keyword search against the library when only a name is known.
//
// The Scanner stage handler drives a queue item from pending to scanned,
// persisting the extracted ads as the item's envelope.
package adslibrary
