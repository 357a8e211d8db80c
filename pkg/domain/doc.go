// Package domain contains the core entities of the registrar: users, contacts,
// .gov domains, domain requests, invitations, portfolios and the transition
// records used while migrating legacy registrar data. These types are free of
// infrastructure concerns so they can be shared across packages.
package domain
