// Package infra contains technical adapters such as spreadsheet readers
// and writers, metrics exporters and the zerolog logger. These packages
// should depend only on the types defined in the core packages.
package infra
