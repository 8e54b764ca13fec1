// Package connectors provides sources that feed character cards into the
// importer. The filesystem connector scans and watches a directory for
// card files.
package connectors
