// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArticleRepository: Article endpoints of the REST API
//   - SourceRepository: Feed source and ingestion endpoints
//   - AuthRepository: Login and registration endpoints
//   - UserRepository: Admin user-management endpoints
//   - KnowledgeRepository: Knowledge-base endpoints
//   - TokenStore: Persistence of the bearer token
//   - TokenDecoder: Derives the session identity from a token
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PromptStore: Refine presets and instruction templates. Built-in defaults are used without it.
//   - FeedProbe: Validates a feed URL before registering it. Skipped without it.
//   - TextRenderer: Converts HTML article bodies to plain text. Bodies are shown raw without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
