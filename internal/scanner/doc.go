// Package scanner implements the first workflow stage: resolving a page
// reference and collecting the page's video ads from the ads library.
//
// The scanner persists the extracted ads as the item's envelope and records
// the resolved page identity on the queue item. Items whose page cannot be
// resolved, or that run no video ads at all, are routed to review rather
// than failed since retrying will not help without user input.
package scanner
