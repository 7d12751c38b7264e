package model

// User mirrors a row of the `users` table. User records are provisioned
// and maintained by the institutional identity service; this application
// only reads them to resolve reservation owners and to authorize admin
// operations via the Role column.
//
// Fields:
//  ID        – primary key identifier of the user.
//  PID       – institutional person identifier, searched by decimal prefix.
//  Onyen     – institutional login name.
//  FirstName – given name.
//  LastName  – family name.
//  Email     – institutional email address.
//  Pronouns  – self-reported pronouns, may be empty.
//  Role      – authorization role ("ADMIN" or "MEMBER").
type User struct {
	ID        uint64 `json:"id"`         // users.id
	PID       uint64 `json:"pid"`        // users.pid
	Onyen     string `json:"onyen"`      // users.onyen
	FirstName string `json:"first_name"` // users.first_name
	LastName  string `json:"last_name"`  // users.last_name
	Email     string `json:"email"`      // users.email
	Pronouns  string `json:"pronouns"`   // users.pronouns
	Role      string `json:"role"`       // users.role
}
