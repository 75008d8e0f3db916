// Package models holds the persistent record types of the classroom layer.
// Field names follow the wire shape of the document store, camelCased.
package models

// RoleType defines the user role type carried in auth claims.
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
)
