// Package tools provides the child-process execution boundary shared by the
// seeding and provisioning flows.
package tools
