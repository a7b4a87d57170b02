// Package config loads vie's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vie/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	units = "metric"            # or "imperial"
//	language = "en"             # weekday names: en, de, fr, es, it, nl
//	log_file = "~/.local/state/vie/vie.log"
//	log_level = "info"
//
//	[weather]
//	provider = "open-meteo"     # or "http"
//	url = ""                    # required for "http"
//
//	[location]
//	source = "ipapi"            # "static", "ipapi", "nmea" or "mqtt"
//	latitude = 52.52            # static
//	longitude = 13.405          # static
//	url = ""                    # ipapi endpoint override
//	port = "/dev/ttyUSB0"       # nmea
//	baud = 9600                 # nmea
//	broker = "localhost:1883"   # mqtt
//	topic = "inertial/gps"      # mqtt
//
//	[timezone]
//	source = "system"           # or "http"
//	zone = ""                   # IANA name for "system", empty for local
//	url = ""                    # endpoint override for "http"
//
//	[mirror]
//	listen = ""                 # e.g. "127.0.0.1:8321"; empty disables
//
// Every field is optional. Strings are trimmed and enumerations are matched
// case-insensitively. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Unknown enumeration values or a source missing its required fields
//
// Validation collects every problem with errors.Join so one run reports
// them all.
//
// The sun zenith angle is fixed at 91° and is not configurable.
package config
