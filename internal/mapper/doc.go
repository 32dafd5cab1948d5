// Package mapper turns scraped records into catalog update payloads.
//
// Each record kind has one mapping function selected by a type switch. Only
// scalar fields that carry a value are copied, so absent and blank fields
// never overwrite catalog data. Field level problems such as an unknown
// gender, a non-numeric weight, or a malformed duration drop that field with
// a warning and leave the rest of the update intact. Sub-entity mentions are
// resolved through the entity resolver; unresolved mentions are omitted.
package mapper
