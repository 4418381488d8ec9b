// Package models holds the GORM persistence models.
//
// Domain entities stay free of ORM tags; each model converts to and from its
// domain counterpart with ToDomain and FromDomain. The schema itself is owned
// by the SQL migrations, so the gorm tags here describe columns but are never
// used to create them.
package models
