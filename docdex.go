// Package docdex provides a documentation site crawler and keyword search
// engine. It discovers pages by breadth-first link traversal or from a
// sitemap, extracts structured content from each page, persists the corpus
// as an atomic snapshot, and serves ranked term-frequency search over it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, sqlite/).
package docdex
