// Package main provides the entry point of settings-admin.
// It keeps application settings in a database table, merges them over the
// configured parameters, caches the merged view and serves a generated admin
// form and a json api using the Fiber framework. Settings can also be listed
// and changed from the command line.
package main
