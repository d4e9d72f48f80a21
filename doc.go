// Package main provides the entry point of UserManagement.
// One binary runs either the REST API ("usermanagement api"), which keeps users,
// groups and permissions in a relational database through gorm, or the
// server-rendered web front-end ("usermanagement web"), which calls that API over
// HTTP. "usermanagement config" prints the effective configuration.
package main
