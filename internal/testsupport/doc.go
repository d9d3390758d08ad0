// Package testsupport builds configs and notebook fixtures for tests.
package testsupport
