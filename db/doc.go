// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, transactions, and schema creation.

# Connection Provider

Open returns the single shared *sql.DB for the configured driver:

	conn, err := db.Open(cfg)

The pool is bounded; callers block when it is exhausted. Every handler uses
this one provider - there are no per-request ad hoc connections.

# Transactions

WithTx wraps multi-statement writes:

	err := db.WithTx(conn, func(tx *sql.Tx) error {
		// inserts
		return nil
	})

Commit on nil, rollback on any error. Failed writes leave no partial rows.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable between Postgres and SQLite: TEXT primary keys are
generated by the application and timestamps are always written explicitly.

# Tables

The schema includes:

  - forms: Form metadata, publish state, publish token
  - questions: Questions per form, typed, in display order
  - options: Choice list entries per question
  - responses: One row per respondent submission
  - answer_texts: Free-text answers
  - answer_options: Selected options (one row per selection)

# Relationships

	forms 1──* questions
	questions 1──* options
	forms 1──* responses
	responses 1──* answer_texts
	responses 1──* answer_options

All foreign keys use ON DELETE CASCADE.
*/
package db
