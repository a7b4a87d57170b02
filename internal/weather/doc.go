// Package weather fetches current conditions and maps them onto the face.
//
// # Overview
//
// Two fetchers implement the Fetcher interface:
//
//   - Client: a small watch-face endpoint answering {"icon": n, "temperature": n}.
//     Coordinates are sent as fixed-point integers (degrees × 10000) in the
//     lat and lon query parameters, together with the unit system.
//   - OpenMeteo: the public Open-Meteo forecast API. WMO weather codes and the
//     day/night flag are folded into the same ten icon indices.
//
// # Response handling
//
// Handle is a pure mapping from Fields to an Update. Responses may be partial:
// a missing icon or temperature leaves the corresponding field on the face as
// it was. Icon indices are bounds checked against the image table before use;
// anything outside [0,9] selects ImageNoData.
//
// # Errors
//
// Transport failures are returned as wrapped errors with a zero status.
// Answers with status >= 400 return a *StatusError carrying the status so the
// caller can report it with the failure. Neither is fatal; the face retries on
// its own schedule.
//
// # Cookies
//
// Every Request carries the cookie the caller assigned to it and the
// Response echoes it back, so responses to superseded requests can be
// recognised and dropped.
package weather
