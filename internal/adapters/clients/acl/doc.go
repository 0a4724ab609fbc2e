// Package acl is the anti-corruption layer between upstream quote providers
// and the domain.
//
// Upstream payloads never leave this package. Each adapter embeds
// [BaseAdapter], decodes into an unexported DTO through one generic JSON fetch and
// translates it into a [domain.QuoteDraft], validating on the way in.
//
// Every upstream failure surfaces as [domain.ErrUnavailable]:
//   - transport errors, exhausted retries and an open circuit breaker
//   - any non-2xx status, with the upstream message as the reason
//   - bodies that are not the expected JSON
//
// Records that decode but carry no content or author are reported as
// [domain.ErrValidation] so importers can skip them without failing a batch.
package acl
