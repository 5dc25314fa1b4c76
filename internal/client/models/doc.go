// Package models holds the record types exchanged with the EduPilot API.
//
// Optional server fields are pointers so that "absent" and "zero" stay
// distinguishable; Subject.Progress in particular is authoritative only
// when present.
package models
