// Package app provides the application context for genctl.
//
// App bundles the configuration with the OS abstractions (command
// executor, file system, hostname lookup) and builds the generation
// pipeline from them. Tests replace the OS pieces with mocks through the
// With* options.
package app
