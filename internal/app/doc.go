// Package app composes the promo service: it wires stores, domain services
// and external integrations into a running application.
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── domain/             # Domain models (pure data structures)
//	│   ├── badge/          # Streaming platform badge catalog
//	│   ├── promotion/      # Promotions, overrides, streaming links
//	│   ├── release/        # Release records
//	│   └── template/       # Creative templates
//	├── compose/            # Override merging and layout composition
//	├── render/             # Server-side PNG rasterization
//	├── storage/            # Store interfaces, memory and postgres backends
//	├── services/           # Business logic per domain
//	├── httpapi/            # REST handlers
//	├── system/             # Lifecycle management
//	└── metrics/            # Prometheus collectors
//
// Business logic lives in services/; handlers only translate HTTP to service
// calls; compose and render stay pure so every surface shows the same layout.
package app
