// Package fileinfo collects files and describes them through an
// extension-keyed handler registry.
//
// Providers register handlers against regular expressions over the file
// extension. Discover flattens them, after the built-in fallback, into an
// ordered Registry. A Dispatcher runs every matching handler for a file in
// registry order and writes the produced lines followed by a blank line.
package fileinfo
