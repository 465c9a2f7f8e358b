// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Besides the services, the package holds the two stateful models the
// front ends share: CuratorList (article list, filters and bulk
// selection) and Editor (single-article editing with AI side actions).
package services
