// Package main provides the entry point for the Kochwerk recipe catalog.
// It runs a Fiber web server that serves the public recipe, equipment and
// about pages as a JSON API together with an authenticated admin panel for
// managing the catalog. Content lives either in a relational database via
// gorm or in plain JSON files, selected by configuration.
package main
