// Package acl implements the Anti-Corruption Layer pattern for external
// services. Adapters here translate between external API models and domain
// models, protecting the domain from external system changes:
//
//   - External DTOs never leak past this package
//   - External status codes map to domain errors
//   - External data is validated before domain objects are created
//
// Two upstreams live here: the quote provider (ZenQuotes-style batch API)
// and the encyclopedia API used for author biographies.
package acl
