// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Form Builder API server.

Form Builder is a form authoring and response collection service: authors
design forms with four question types, publish them to mint token-protected
share links, and read per-question analytics over collected responses.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... DATABASE_TYPE=postgres go run main.go

Or with flags:

	go run main.go -p 3318 -t sqlite -d formbuilder.db

A .env file in the working directory is loaded automatically when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string (Postgres URL or SQLite path)

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (-base-url): Public base URL for published form links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (forms, publishing, responses, analytics)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: ID and publish token generation
  - db: Connection provider, transactions, schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
