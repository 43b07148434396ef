// Package timezone implements the Timezone Normalizer component.
//
// The Timezone Normalizer:
//   - Parses source timestamps, rejecting zone-less values
//   - Converts UTC instants to one configured IANA zone
//   - Derives date and time-with-abbreviation strings from the local instant
//   - Pins unconfirmed times to local midnight of the UTC date
package timezone
