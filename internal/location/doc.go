// Package location provides the position fixes the face needs for sun times
// and weather lookups.
//
// Four sources implement Source:
//
//   - Static: a fixed coordinate from the config file.
//   - IPAPI: coarse geolocation from an ip-api.com style JSON endpoint.
//   - NMEA: a serial GPS receiver. A reader goroutine parses RMC and GGA
//     sentences and keeps the latest valid fix.
//   - MQTT: fixes published on a broker topic as {"lat": .., "lon": ..}.
//
// Sources that have not seen a fix yet return ErrNoFix. Callers treat any
// error as a lost location and ask again on a later tick.
package location
