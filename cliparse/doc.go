// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - BaseURL: Public base URL used in published form links

# CLI Flags

	-p        Server port
	-d        Database URL
	-t        Database type
	-base-url Public base URL

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	BASE_URL      → -base-url

CLI flags take precedence over environment variables. BaseURL defaults to
http://localhost:{port} when neither is set.

# Validation

ParseFlags returns an error if DATABASE_URL is missing.
*/
package cliparse
